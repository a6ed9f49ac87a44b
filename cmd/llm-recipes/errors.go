package llmrecipes

const (
	configurationLoaderInitializationErrorFormat = "initialize configuration loader: %w"
	configurationSourceResolutionErrorFormat     = "resolve configuration source: %w"
	rootConfigurationLoadErrorFormat             = "load root configuration %s: %w"
	openSettingsErrorFormat                      = "open settings: %w"
	loadCatalogErrorFormat                       = "load chef catalog: %w"
	openHistoryErrorFormat                       = "open history: %w"
	buildLoggerErrorFormat                       = "build logger: %w"
	invalidChefFlagErrorFormat                   = "invalid --chef %q: want ID=PERCENT"
	unknownChefErrorFormat                       = "unknown chef %q (see `llm-recipes chefs`)"
	percentRangeErrorFormat                      = "%s must be between 0 and 100, got %d"
	starsRangeErrorFormat                        = "--stars must be 1, 2 or 3, got %d"
	positiveValueErrorFormat                     = "--%s must be positive, got %d"
	ingredientTierErrorFormat                    = "--ingredients must be everyday or luxurious, got %q"
	outputFormatErrorFormat                      = "--format must be text, html, json or rendered, got %q"
	missingCredentialHintFormat                  = "%w; run `llm-recipes key set` or set %s"
	serviceFailureErrorFormat                    = "recipe generation failed: %w"
	responseFailureErrorFormat                   = "the model returned no usable recipe: %w"
	exportRecipeErrorFormat                      = "save recipe: %w"
	readKeyErrorFormat                           = "read API key from stdin: %w"
	historyLookupErrorFormat                     = "find recipe %q: %w"
	encodeJSONErrorFormat                        = "encode json: %w"
	missingStoredKeyMessage                      = "no API key provided"
)
