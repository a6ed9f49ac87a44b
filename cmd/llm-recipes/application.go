package llmrecipes

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/llm-recipes/internal/chefs"
	"github.com/temirov/llm-recipes/internal/config"
	"github.com/temirov/llm-recipes/internal/fsops"
	"github.com/temirov/llm-recipes/internal/generation"
	"github.com/temirov/llm-recipes/internal/history"
	"github.com/temirov/llm-recipes/internal/llm"
	"github.com/temirov/llm-recipes/internal/secrets"
	"github.com/temirov/llm-recipes/internal/settings"
)

// application holds the collaborators shared by every subcommand.
type application struct {
	root             config.Root
	storageDirectory string
	filesystem       fsops.FS
	logger           *zap.Logger
	settings         *settings.Store
	secrets          secrets.Store
	catalog          chefs.Catalog
}

type rootOptions struct {
	configPath       string
	storageDirectory string
	logLevel         string
	app              *application
}

func newApplication(options *rootOptions, logOutput io.Writer) (*application, error) {
	rootConfiguration, loader, err := loadRootConfiguration(options.configPath)
	if err != nil {
		return nil, err
	}
	if level := strings.TrimSpace(options.logLevel); level != "" {
		rootConfiguration.Common.Logging.Level = strings.ToLower(level)
	}

	logger, err := buildLogger(rootConfiguration, logOutput)
	if err != nil {
		return nil, fmt.Errorf(buildLoggerErrorFormat, err)
	}

	storageDirectory := rootConfiguration.StorageDirectory(loader.HomeDirectory())
	if override := strings.TrimSpace(options.storageDirectory); override != "" {
		storageDirectory = override
	}

	filesystem := fsops.NewOS()
	settingsStore, err := settings.Open(filesystem.Afero(), storageDirectory, logger)
	if err != nil {
		return nil, fmt.Errorf(openSettingsErrorFormat, err)
	}

	catalog, err := chefs.Load(rootConfiguration.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf(loadCatalogErrorFormat, err)
	}

	keyringStore := secrets.NewKeyring(rootConfiguration.Keyring.Service, rootConfiguration.Keyring.User)
	keyringStore.Flags = settingsStore
	keyringStore.FlagKey = settings.KeyHasAPIKey

	logger.Debug("application ready",
		zap.String("storage_directory", storageDirectory),
		zap.String("history_backend", rootConfiguration.Storage.HistoryBackend),
		zap.Int("chefs", len(catalog.IDs())))

	return &application{
		root:             rootConfiguration,
		storageDirectory: storageDirectory,
		filesystem:       filesystem,
		logger:           logger,
		settings:         settingsStore,
		secrets:          secrets.WithEnvironmentFallback{Store: keyringStore, Variable: rootConfiguration.Common.API.APIKeyEnv},
		catalog:          catalog,
	}, nil
}

func buildLogger(rootConfiguration config.Root, output io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(rootConfiguration.Common.Logging.Level)
	if err != nil {
		return nil, err
	}
	var encoder zapcore.Encoder
	if rootConfiguration.Common.Logging.Format == config.LoggingFormatJSON {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(output), level)
	return zap.New(core), nil
}

func (app *application) historyLimit() history.LimitFunc {
	return func() int {
		return app.settings.GetInt(settings.KeyHistorySize, history.DefaultLimit)
	}
}

// openHistory returns the configured history store and a function that
// releases it.
func (app *application) openHistory(ctx context.Context) (history.Store, func(), error) {
	if app.root.Storage.HistoryBackend == config.HistoryBackendSQLite {
		path := app.filesystem.Join(app.storageDirectory, history.DatabaseFileName)
		store, err := history.OpenSQLite(ctx, path, app.historyLimit())
		if err != nil {
			return nil, nil, fmt.Errorf(openHistoryErrorFormat, err)
		}
		return store, func() {
			if closeErr := store.Close(); closeErr != nil {
				app.logger.Warn("close history database", zap.Error(closeErr))
			}
		}, nil
	}
	path := app.filesystem.Join(app.storageDirectory, history.FileName)
	return history.NewFile(app.filesystem, path, app.historyLimit(), app.logger), func() {}, nil
}

func (app *application) generator(sink history.Sink) generation.Generator {
	endpoint := app.root.Common.API.Endpoint
	return generation.Generator{
		Settings:    app.settings,
		Credentials: app.secrets,
		NewCompleter: func(credential string) generation.Completer {
			return llm.Client{HTTPBaseURL: endpoint, APIKey: credential}
		},
		Catalog: app.catalog,
		History: sink,
		Logger:  app.logger,
	}
}
