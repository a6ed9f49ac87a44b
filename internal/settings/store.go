// Package settings persists user-editable preferences as a JSON document
// addressed with dot-delimited keys such as "api_settings.model".
package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// FileName is the settings document inside the storage directory.
	FileName = "settings.json"

	KeyTheme             = "theme"
	KeySaveRecipes       = "save_recipes"
	KeyHistorySize       = "recipe_history_size"
	KeyDefaultServings   = "default_servings"
	KeyModel             = "api_settings.model"
	KeyTemperature       = "api_settings.temperature"
	KeyMaxTokens         = "api_settings.max_tokens"
	KeyHasAPIKey         = "has_api_key"
	settingsFileType     = "json"
	directoryPermissions = 0o755

	createDirectoryErrorFormat = "create settings directory %s: %w"
	writeSettingsErrorFormat   = "write settings %s: %w"
	emptyKeyErrorMessage       = "settings key is empty"
)

// Defaults returns the document written when no readable settings file exists.
func Defaults() map[string]any {
	return map[string]any{
		KeyTheme:           "dark",
		KeySaveRecipes:     true,
		KeyHistorySize:     10,
		KeyDefaultServings: 4,
		"api_settings": map[string]any{
			"model":       "gpt-4",
			"temperature": 0.7,
			"max_tokens":  2000,
		},
		KeyHasAPIKey: false,
	}
}

// Store is a viper-backed settings document. Reads never fail; a missing
// key yields the caller's fallback.
type Store struct {
	mutex      sync.Mutex
	viper      *viper.Viper
	filesystem afero.Fs
	path       string
	logger     *zap.Logger
}

// Open loads directory/settings.json from filesystem, writing the default
// document when the file is missing or cannot be parsed.
func Open(filesystem afero.Fs, directory string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	path := filepath.Join(directory, FileName)
	settingsViper := viper.New()
	settingsViper.SetFs(filesystem)
	settingsViper.SetConfigFile(path)
	settingsViper.SetConfigType(settingsFileType)

	store := &Store{viper: settingsViper, filesystem: filesystem, path: path, logger: logger}
	if readError := settingsViper.ReadInConfig(); readError != nil {
		exists, _ := afero.Exists(filesystem, path)
		if exists {
			logger.Warn("settings file unreadable, restoring defaults", zap.String("path", path), zap.Error(readError))
		}
		if err := filesystem.MkdirAll(directory, directoryPermissions); err != nil {
			return nil, fmt.Errorf(createDirectoryErrorFormat, directory, err)
		}
		if err := store.reset(); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (store *Store) reset() error {
	fresh := viper.New()
	fresh.SetFs(store.filesystem)
	fresh.SetConfigFile(store.path)
	fresh.SetConfigType(settingsFileType)
	if err := fresh.MergeConfigMap(Defaults()); err != nil {
		return fmt.Errorf(writeSettingsErrorFormat, store.path, err)
	}
	if err := fresh.WriteConfig(); err != nil {
		return fmt.Errorf(writeSettingsErrorFormat, store.path, err)
	}
	store.viper = fresh
	return nil
}

// Path reports where the settings document lives.
func (store *Store) Path() string { return store.path }

// Get returns the raw value for key.
func (store *Store) Get(key string) (any, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if !store.viper.IsSet(key) {
		return nil, false
	}
	return store.viper.Get(key), true
}

func (store *Store) GetString(key string, fallback string) string {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if !store.viper.IsSet(key) {
		return fallback
	}
	return store.viper.GetString(key)
}

func (store *Store) GetFloat64(key string, fallback float64) float64 {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if !store.viper.IsSet(key) {
		return fallback
	}
	return store.viper.GetFloat64(key)
}

func (store *Store) GetInt(key string, fallback int) int {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if !store.viper.IsSet(key) {
		return fallback
	}
	return store.viper.GetInt(key)
}

func (store *Store) GetBool(key string, fallback bool) bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if !store.viper.IsSet(key) {
		return fallback
	}
	return store.viper.GetBool(key)
}

// All returns the whole document as nested maps.
func (store *Store) All() map[string]any {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.viper.AllSettings()
}

// Set stores value under key and persists the document immediately.
func (store *Store) Set(key string, value any) error {
	if key == "" {
		return errors.New(emptyKeyErrorMessage)
	}
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.viper.Set(key, value)
	if err := store.viper.WriteConfig(); err != nil {
		return fmt.Errorf(writeSettingsErrorFormat, store.path, err)
	}
	return nil
}
