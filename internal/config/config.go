package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	rootConfigurationEmptyContentErrorFormat = "root configuration %s is empty"
	rootConfigurationUnmarshalErrorFormat    = "unmarshal root configuration %s: %w"
	unsupportedLoggingLevelErrorFormat       = "common.logging.level %q is not one of debug, info, warn, error"
	unsupportedLoggingFormatErrorFormat      = "common.logging.format %q is not one of console, json"
	unsupportedHistoryBackendErrorFormat     = "storage.history_backend %q is not one of json, sqlite"
	negativeTimeoutErrorFormat               = "common.defaults.timeout_seconds must not be negative, got %d"

	HistoryBackendJSON   = "json"
	HistoryBackendSQLite = "sqlite"

	LoggingFormatConsole = "console"
	LoggingFormatJSON    = "json"

	defaultLoggingLevel     = "info"
	defaultStorageDirectory = "~/.llm-recipes"
	homeDirectoryPrefix     = "~"
)

var supportedLoggingLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

type Root struct {
	Common  Common  `yaml:"common"`
	Storage Storage `yaml:"storage"`
	Keyring Keyring `yaml:"keyring"`
	Catalog Catalog `yaml:"catalog"`
}

type Common struct {
	API struct {
		Endpoint  string `yaml:"endpoint"`
		APIKeyEnv string `yaml:"api_key_env"`
	} `yaml:"api"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Defaults struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"defaults"`
}

// Storage locates the user-scoped settings and history files.
type Storage struct {
	Directory      string `yaml:"directory"`
	HistoryBackend string `yaml:"history_backend"`
}

// Keyring addresses the credential entry in the OS keyring.
type Keyring struct {
	Service string `yaml:"service"`
	User    string `yaml:"user"`
}

// Catalog optionally replaces the embedded chef catalog.
type Catalog struct {
	Path string `yaml:"path"`
}

// LoadRoot parses the provided configuration source, fills defaults and
// validates enumerated fields.
func LoadRoot(source RootConfigurationSource) (Root, error) {
	if len(source.Content) == 0 {
		return Root{}, fmt.Errorf(rootConfigurationEmptyContentErrorFormat, source.Reference)
	}

	var rootConfiguration Root
	if err := yaml.Unmarshal(source.Content, &rootConfiguration); err != nil {
		return Root{}, fmt.Errorf(rootConfigurationUnmarshalErrorFormat, source.Reference, err)
	}
	rootConfiguration.applyDefaults()
	if err := rootConfiguration.validate(); err != nil {
		return Root{}, err
	}
	return rootConfiguration, nil
}

func (root *Root) applyDefaults() {
	root.Common.Logging.Level = strings.ToLower(strings.TrimSpace(root.Common.Logging.Level))
	if root.Common.Logging.Level == "" {
		root.Common.Logging.Level = defaultLoggingLevel
	}
	root.Common.Logging.Format = strings.ToLower(strings.TrimSpace(root.Common.Logging.Format))
	if root.Common.Logging.Format == "" {
		root.Common.Logging.Format = LoggingFormatConsole
	}
	root.Storage.HistoryBackend = strings.ToLower(strings.TrimSpace(root.Storage.HistoryBackend))
	if root.Storage.HistoryBackend == "" {
		root.Storage.HistoryBackend = HistoryBackendJSON
	}
	if strings.TrimSpace(root.Storage.Directory) == "" {
		root.Storage.Directory = defaultStorageDirectory
	}
}

func (root Root) validate() error {
	if !supportedLoggingLevels[root.Common.Logging.Level] {
		return fmt.Errorf(unsupportedLoggingLevelErrorFormat, root.Common.Logging.Level)
	}
	switch root.Common.Logging.Format {
	case LoggingFormatConsole, LoggingFormatJSON:
	default:
		return fmt.Errorf(unsupportedLoggingFormatErrorFormat, root.Common.Logging.Format)
	}
	switch root.Storage.HistoryBackend {
	case HistoryBackendJSON, HistoryBackendSQLite:
	default:
		return fmt.Errorf(unsupportedHistoryBackendErrorFormat, root.Storage.HistoryBackend)
	}
	if root.Common.Defaults.TimeoutSeconds < 0 {
		return fmt.Errorf(negativeTimeoutErrorFormat, root.Common.Defaults.TimeoutSeconds)
	}
	return nil
}

// StorageDirectory expands a leading "~" against homeDirectory.
func (root Root) StorageDirectory(homeDirectory string) string {
	directory := root.Storage.Directory
	if directory == homeDirectoryPrefix {
		return homeDirectory
	}
	if strings.HasPrefix(directory, homeDirectoryPrefix+"/") {
		return filepath.Join(homeDirectory, strings.TrimPrefix(directory, homeDirectoryPrefix+"/"))
	}
	return filepath.Clean(directory)
}
