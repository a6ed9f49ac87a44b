package llmrecipes

const (
	rootCommandUse   = "llm-recipes"
	rootCommandShort = "Generate Michelin-style recipes with an LLM"

	configFlagName      = "config"
	configFlagUsage     = "Path to config.yaml (defaults: ./config.yaml, ~/.llm-recipes/config.yaml, embedded)"
	storageDirFlagName  = "storage-dir"
	storageDirFlagUsage = "Directory for settings and history (overrides storage.directory)"
	logLevelFlagName    = "log-level"
	logLevelFlagUsage   = "Override common.logging.level (debug, info, warn, error)"

	generateCommandUse            = "generate"
	generateCommandShort          = "Generate a recipe"
	chefFlagName                  = "chef"
	chefFlagUsage                 = "Chef influence as ID=PERCENT (repeatable, insertion order kept)"
	starsFlagName                 = "stars"
	starsFlagUsage                = "Michelin star level (1-3)"
	ingredientsFlagName           = "ingredients"
	ingredientsFlagUsage          = "Ingredient tier: everyday or luxurious"
	seasonalFlagName              = "seasonal"
	seasonalFlagUsage             = "Prefer seasonal ingredients"
	gastronomyFlagName            = "gastronomy"
	gastronomyFlagUsage           = "Modern technique level (0-100)"
	specializedEquipmentFlagName  = "specialized-equipment"
	specializedEquipmentFlagUsage = "Allow specialized molecular equipment"
	dietFlagName                  = "diet"
	dietFlagUsage                 = "Dietary restriction (repeatable or comma separated)"
	occasionFlagName              = "occasion"
	occasionFlagUsage             = "Occasion for the meal"
	servingsFlagName              = "servings"
	servingsFlagUsage             = "Number of servings (defaults to the default_servings setting)"
	prepFlagName                  = "prep"
	prepFlagUsage                 = "Preparation time in minutes"
	cookFlagName                  = "cook"
	cookFlagUsage                 = "Cooking time in minutes"
	equipmentFlagName             = "equipment"
	equipmentFlagUsage            = "Available equipment (repeatable or comma separated)"
	outputFlagName                = "output"
	outputFlagUsage               = "Also write the recipe to a .html, .txt or .md file"
	timeoutFlagName               = "timeout"
	timeoutFlagUsage              = "Request timeout (e.g., 90s; 0 = common.defaults.timeout_seconds)"
	formatFlagName                = "format"
	formatFlagUsage               = "Output format: text, html, json or rendered"

	chefsCommandUse       = "chefs"
	chefsCommandShort     = "List the chef catalog"
	chefsShowCommandUse   = "show CHEF"
	chefsShowCommandShort = "Show one chef profile"

	keyCommandUse         = "key"
	keyCommandShort       = "Manage the completion service API key"
	keySetCommandUse      = "set"
	keySetCommandShort    = "Store the API key in the OS keyring (reads stdin without --value)"
	keyStatusCommandUse   = "status"
	keyStatusCommandShort = "Report whether an API key is available"
	keyDeleteCommandUse   = "delete"
	keyDeleteCommandShort = "Remove the API key from the OS keyring"
	valueFlagName         = "value"
	valueFlagUsage        = "API key value"

	settingsCommandUse       = "settings"
	settingsCommandShort     = "Show or edit user settings"
	settingsGetCommandUse    = "get KEY"
	settingsGetCommandShort  = "Print one setting (dot-delimited key)"
	settingsSetCommandUse    = "set KEY VALUE"
	settingsSetCommandShort  = "Change one setting; VALUE is parsed as JSON when possible"
	settingsListCommandUse   = "list"
	settingsListCommandShort = "Print all settings"

	historyCommandUse        = "history"
	historyCommandShort      = "Browse saved recipes"
	historyListCommandUse    = "list"
	historyListCommandShort  = "List saved recipes, newest first"
	historyShowCommandUse    = "show ID"
	historyShowCommandShort  = "Print a saved recipe (ID or unique prefix)"
	historyClearCommandUse   = "clear"
	historyClearCommandShort = "Delete all saved recipes"
	renderFlagName           = "render"
	renderFlagUsage          = "Render the recipe for the terminal"
	htmlFlagName             = "html"
	htmlFlagUsage            = "Print the HTML document instead of raw text"

	exportCommandUse   = "export ID FILE"
	exportCommandShort = "Write a saved recipe to a .html, .txt or .md file"

	outputFormatText     = "text"
	outputFormatHTML     = "html"
	outputFormatJSON     = "json"
	outputFormatRendered = "rendered"

	dashPlaceholder        = "-"
	historyTimestampLayout = "2006-01-02 15:04"
	renderWordWrap         = 80
	shortIDLength          = 8
)

// supportedModels are the models offered by the settings editor; others are
// accepted with a warning.
var supportedModels = []string{"gpt-4", "gpt-4o"}
