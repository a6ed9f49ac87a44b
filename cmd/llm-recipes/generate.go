package llmrecipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/llm-recipes/internal/chefs"
	"github.com/temirov/llm-recipes/internal/export"
	"github.com/temirov/llm-recipes/internal/generation"
	"github.com/temirov/llm-recipes/internal/history"
	"github.com/temirov/llm-recipes/internal/recipe"
	"github.com/temirov/llm-recipes/internal/settings"
)

type generateCommandOptions struct {
	chefs                []string
	stars                int
	ingredients          string
	seasonal             bool
	gastronomy           int
	specializedEquipment bool
	diets                []string
	occasion             string
	servings             int
	prepMinutes          int
	cookMinutes          int
	equipment            []string
	outputPath           string
	timeout              time.Duration
	format               string
}

func newGenerateCommand(root *rootOptions) *cobra.Command {
	defaults := recipe.DefaultParameters()
	options := &generateCommandOptions{
		stars:       defaults.MichelinStars,
		ingredients: string(defaults.IngredientTier),
		occasion:    recipe.DefaultOccasion,
		prepMinutes: defaults.PrepMinutes,
		cookMinutes: defaults.CookMinutes,
		equipment:   append([]string(nil), recipe.DefaultEquipment...),
		format:      outputFormatText,
	}

	command := &cobra.Command{
		Use:   generateCommandUse,
		Short: generateCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root.app, *options)
		},
	}

	flags := command.Flags()
	flags.StringArrayVar(&options.chefs, chefFlagName, nil, chefFlagUsage)
	flags.IntVar(&options.stars, starsFlagName, options.stars, starsFlagUsage)
	flags.StringVar(&options.ingredients, ingredientsFlagName, options.ingredients, ingredientsFlagUsage)
	flags.IntVar(&options.gastronomy, gastronomyFlagName, 0, gastronomyFlagUsage)
	flags.StringSliceVar(&options.diets, dietFlagName, nil, dietFlagUsage)
	flags.StringVar(&options.occasion, occasionFlagName, options.occasion, occasionFlagUsage)
	flags.IntVar(&options.servings, servingsFlagName, 0, servingsFlagUsage)
	flags.IntVar(&options.prepMinutes, prepFlagName, options.prepMinutes, prepFlagUsage)
	flags.IntVar(&options.cookMinutes, cookFlagName, options.cookMinutes, cookFlagUsage)
	flags.StringSliceVar(&options.equipment, equipmentFlagName, options.equipment, equipmentFlagUsage)
	flags.StringVar(&options.outputPath, outputFlagName, "", outputFlagUsage)
	flags.DurationVar(&options.timeout, timeoutFlagName, 0, timeoutFlagUsage)
	flags.StringVar(&options.format, formatFlagName, options.format, formatFlagUsage)
	registerBoolChoiceFlag(command, &options.seasonal, seasonalFlagName, seasonalFlagUsage)
	registerBoolChoiceFlag(command, &options.specializedEquipment, specializedEquipmentFlagName, specializedEquipmentFlagUsage)

	return command
}

func runGenerate(cmd *cobra.Command, app *application, options generateCommandOptions) error {
	switch options.format {
	case outputFormatText, outputFormatHTML, outputFormatJSON, outputFormatRendered:
	default:
		return fmt.Errorf(outputFormatErrorFormat, options.format)
	}
	if options.servings == 0 {
		options.servings = app.settings.GetInt(settings.KeyDefaultServings, recipe.DefaultServings)
	}
	parameters, err := buildParameters(options, app.catalog)
	if err != nil {
		return err
	}
	warnUnknownTags(app.logger, dietFlagName, parameters.DietaryRestrictions, recipe.KnownDietaryRestrictions)
	warnUnknownTags(app.logger, equipmentFlagName, parameters.Equipment, recipe.KnownEquipment)
	warnUnknownTags(app.logger, occasionFlagName, []string{parameters.Occasion}, recipe.KnownOccasions)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := options.timeout
	if timeout <= 0 && app.root.Common.Defaults.TimeoutSeconds > 0 {
		timeout = time.Duration(app.root.Common.Defaults.TimeoutSeconds) * time.Second
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var sink history.Sink = history.Discard{}
	if app.settings.GetBool(settings.KeySaveRecipes, true) {
		store, release, openErr := app.openHistory(ctx)
		if openErr != nil {
			app.logger.Warn("recipe history unavailable", zap.Error(openErr))
		} else {
			defer release()
			sink = store
		}
	}

	result, err := app.generator(sink).Generate(ctx, parameters)
	if err != nil {
		return describeGenerationError(err, app.root.Common.API.APIKeyEnv)
	}

	if options.outputPath != "" {
		if err := export.Write(app.filesystem, options.outputPath, result); err != nil {
			return fmt.Errorf(exportRecipeErrorFormat, err)
		}
	}
	return printResult(cmd.OutOrStdout(), result, options.format, app.settings.GetString(settings.KeyTheme, export.StyleDark))
}

func buildParameters(options generateCommandOptions, catalog chefs.Catalog) (recipe.Parameters, error) {
	parameters := recipe.DefaultParameters()

	for _, chefFlag := range options.chefs {
		reference, percentText, found := strings.Cut(chefFlag, "=")
		if !found {
			return recipe.Parameters{}, fmt.Errorf(invalidChefFlagErrorFormat, chefFlag)
		}
		percent, convErr := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(percentText), "%")))
		if convErr != nil {
			return recipe.Parameters{}, fmt.Errorf(invalidChefFlagErrorFormat, chefFlag)
		}
		if percent < 0 || percent > 100 {
			return recipe.Parameters{}, fmt.Errorf(percentRangeErrorFormat, "--"+chefFlagName, percent)
		}
		profile, known := catalog.Lookup(reference)
		if !known {
			return recipe.Parameters{}, fmt.Errorf(unknownChefErrorFormat, reference)
		}
		parameters.SetChefInfluence(profile.ID, percent)
	}

	if options.stars < 1 || options.stars > 3 {
		return recipe.Parameters{}, fmt.Errorf(starsRangeErrorFormat, options.stars)
	}
	parameters.MichelinStars = options.stars

	switch recipe.IngredientTier(strings.ToLower(strings.TrimSpace(options.ingredients))) {
	case recipe.IngredientsEveryday:
		parameters.IngredientTier = recipe.IngredientsEveryday
	case recipe.IngredientsLuxurious:
		parameters.IngredientTier = recipe.IngredientsLuxurious
	default:
		return recipe.Parameters{}, fmt.Errorf(ingredientTierErrorFormat, options.ingredients)
	}
	parameters.Seasonal = options.seasonal

	if options.gastronomy < 0 || options.gastronomy > 100 {
		return recipe.Parameters{}, fmt.Errorf(percentRangeErrorFormat, "--"+gastronomyFlagName, options.gastronomy)
	}
	parameters.GastronomyLevel = options.gastronomy
	parameters.SpecializedEquipment = options.specializedEquipment

	for _, diet := range options.diets {
		parameters.AddDietaryRestriction(recipe.CanonicalTag(diet, recipe.KnownDietaryRestrictions))
	}
	for _, equipment := range options.equipment {
		parameters.AddEquipment(recipe.CanonicalTag(equipment, recipe.KnownEquipment))
	}
	parameters.Occasion = recipe.CanonicalTag(options.occasion, recipe.KnownOccasions)

	positiveValues := []struct {
		name  string
		value int
	}{
		{name: servingsFlagName, value: options.servings},
		{name: prepFlagName, value: options.prepMinutes},
		{name: cookFlagName, value: options.cookMinutes},
	}
	for _, positive := range positiveValues {
		if positive.value <= 0 {
			return recipe.Parameters{}, fmt.Errorf(positiveValueErrorFormat, positive.name, positive.value)
		}
	}
	parameters.Servings = options.servings
	parameters.PrepMinutes = options.prepMinutes
	parameters.CookMinutes = options.cookMinutes
	return parameters, nil
}

func warnUnknownTags(logger *zap.Logger, flagName string, tags []string, known []string) {
	for _, tag := range recipe.UnknownTags(tags, known) {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		logger.Warn("unrecognised option, passing it through", zap.String("flag", flagName), zap.String("value", tag))
	}
}

func describeGenerationError(err error, apiKeyEnv string) error {
	var configurationError *generation.ConfigurationError
	var serviceError *generation.ServiceError
	var responseError *generation.ResponseError
	switch {
	case errors.As(err, &configurationError):
		envName := apiKeyEnv
		if envName == "" {
			envName = dashPlaceholder
		}
		return fmt.Errorf(missingCredentialHintFormat, err, envName)
	case errors.As(err, &serviceError):
		return fmt.Errorf(serviceFailureErrorFormat, err)
	case errors.As(err, &responseError):
		return fmt.Errorf(responseFailureErrorFormat, err)
	default:
		return err
	}
}

func printResult(output io.Writer, result recipe.Result, format string, theme string) error {
	switch format {
	case outputFormatHTML:
		_, err := fmt.Fprint(output, result.HTML)
		return err
	case outputFormatJSON:
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf(encodeJSONErrorFormat, err)
		}
		return nil
	case outputFormatRendered:
		rendered, err := export.RenderTerminal(result.RawText, theme, renderWordWrap)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(output, rendered); err != nil {
			return err
		}
	default:
		if _, err := fmt.Fprintln(output, strings.TrimRight(result.RawText, "\n")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(output, "\nComplexity Score: %s\nRecipe ID: %s\n", result.ComplexityScore, result.ID)
	return err
}
