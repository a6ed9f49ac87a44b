// Package prompt turns generation parameters into the system and user
// messages sent to the completion service. Everything here is pure.
package prompt

import (
	"fmt"
	"strings"

	"github.com/temirov/llm-recipes/internal/chefs"
	"github.com/temirov/llm-recipes/internal/recipe"
)

const (
	traditionalUpperBound = 30
	molecularLowerBound   = 70
	unknownChefName       = "Unknown Chef"
)

// GastronomyBucket classifies the share of modern technique requested.
type GastronomyBucket string

const (
	GastronomyTraditional GastronomyBucket = "traditional"
	GastronomyBalanced    GastronomyBucket = "balanced"
	GastronomyMolecular   GastronomyBucket = "molecular"
)

// ClassifyGastronomy buckets a level: below 30 is traditional, above 70 is
// molecular, and 30 through 70 inclusive is balanced.
func ClassifyGastronomy(level int) GastronomyBucket {
	if level < traditionalUpperBound {
		return GastronomyTraditional
	}
	if level > molecularLowerBound {
		return GastronomyMolecular
	}
	return GastronomyBalanced
}

var gastronomyQualifiers = map[GastronomyBucket]string{
	GastronomyTraditional: "mostly traditional cooking methods",
	GastronomyBalanced:    "balanced mix of traditional and modern techniques",
	GastronomyMolecular:   "significant use of molecular gastronomy and modern techniques",
}

var starDescriptions = map[int]string{
	1: "Excellent cooking, worth a stop",
	2: "Excellent cooking, worth a detour",
	3: "Exceptional cuisine, worth a special journey",
}

const (
	preamble                 = "Create a Michelin-star level recipe with the following specifications:\n\n"
	chefInfluencesHeader     = "CHEF INFLUENCES:\n"
	noChefSelectedLine       = "CHEF INFLUENCES: No specific chef selected. Create a general Michelin-star level recipe.\n"
	everydayIngredients      = "Everyday ingredients that are commonly available in well-stocked supermarkets"
	luxuriousIngredients     = "Luxurious, hard-to-find ingredients that might require specialty stores or online ordering"
	seasonalSentence         = "Prioritize seasonal ingredients appropriate for the current time of year"
	specializedEquipmentLine = "Specialized equipment is available (sous vide, anti-griddle, etc.)"
)

// RecipeSections lists, in order, the sections every response must contain.
var RecipeSections = []string{
	"A creative and descriptive title",
	"A brief introduction explaining the dish and its inspiration",
	"Comprehensive ingredients list with precise measurements",
	"Detailed preparation instructions broken down by components",
	"Step-by-step cooking instructions with timing and technique details",
	"Plating instructions with artistic presentation guidance",
	"Chef's notes with technique tips and insights",
	"Suggested wine or beverage pairings",
	"Possible ingredient substitutions",
}

// Build renders the user prompt for the given parameters. The output depends
// only on its inputs, so identical inputs produce byte-identical prompts.
func Build(parameters recipe.Parameters, catalog chefs.Catalog) string {
	var sb strings.Builder
	sb.WriteString(preamble)

	writeChefInfluences(&sb, parameters.Chefs, catalog)

	sb.WriteString(fmt.Sprintf("\nMICHELIN STAR LEVEL: %d star", parameters.MichelinStars))
	if description, ok := starDescriptions[parameters.MichelinStars]; ok {
		sb.WriteString(" - ")
		sb.WriteString(description)
	}
	sb.WriteString("\n")

	sb.WriteString("\nINGREDIENT TYPE: ")
	if parameters.IngredientTier == recipe.IngredientsLuxurious {
		sb.WriteString(luxuriousIngredients)
	} else {
		sb.WriteString(everydayIngredients)
	}
	if parameters.Seasonal {
		sb.WriteString("\n")
		sb.WriteString(seasonalSentence)
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("\nGASTRONOMY LEVEL: %d%% modern techniques (%s)",
		parameters.GastronomyLevel, gastronomyQualifiers[ClassifyGastronomy(parameters.GastronomyLevel)]))
	if parameters.SpecializedEquipment {
		sb.WriteString("\n")
		sb.WriteString(specializedEquipmentLine)
	}
	sb.WriteString("\n")

	if restrictions := recipe.UniqueTags(parameters.DietaryRestrictions); len(restrictions) > 0 {
		sb.WriteString("\nDIETARY RESTRICTIONS: ")
		sb.WriteString(strings.Join(restrictions, ", "))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\nOCCASION: %s\n", parameters.Occasion))
	sb.WriteString(fmt.Sprintf("\nSERVINGS: %d\n", parameters.Servings))
	sb.WriteString("\nTIME CONSTRAINTS:")
	sb.WriteString(fmt.Sprintf("\n- Preparation time: approximately %d minutes", parameters.PrepMinutes))
	sb.WriteString(fmt.Sprintf("\n- Cooking time: approximately %d minutes\n", parameters.CookMinutes))

	if equipment := recipe.UniqueTags(parameters.Equipment); len(equipment) > 0 {
		sb.WriteString("\nAVAILABLE EQUIPMENT: ")
		sb.WriteString(strings.Join(equipment, ", "))
		sb.WriteString("\n")
	}

	writeClosingInstructions(&sb)
	return sb.String()
}

func writeChefInfluences(sb *strings.Builder, influences []recipe.ChefInfluence, catalog chefs.Catalog) {
	if len(influences) == 0 {
		sb.WriteString(noChefSelectedLine)
		return
	}
	sb.WriteString(chefInfluencesHeader)
	for _, influence := range influences {
		name := unknownChefName
		signature := ""
		if profile, found := catalog.Profile(influence.ChefID); found {
			name = profile.Name
			signature = profile.Signature
		}
		narrative := catalog.Influence(influence.ChefID, chefs.InfluenceTier(influence.Percent))
		sb.WriteString(fmt.Sprintf("- %s (%d%% influence): %s\n", name, influence.Percent, narrative))
		sb.WriteString(fmt.Sprintf("  Known for: %s\n", signature))
	}
}

func writeClosingInstructions(sb *strings.Builder) {
	sb.WriteString("\nPlease create a comprehensive recipe that includes:\n")
	writeSectionList(sb)
	sb.WriteString("\nThe recipe should reflect the chef influences, Michelin star level, and all other parameters specified above.\n")
	sb.WriteString("\nFinally, at the very end of your response, include a line formatted exactly like this:\n")
	sb.WriteString("**Complexity Score: [score]/10**\n")
	sb.WriteString("Where [score] is an integer from 1 to 10 representing the overall complexity based on ingredients and techniques.\n")
}

func writeSectionList(sb *strings.Builder) {
	for index, section := range RecipeSections {
		sb.WriteString(fmt.Sprintf("%d. %s\n", index+1, section))
	}
}
