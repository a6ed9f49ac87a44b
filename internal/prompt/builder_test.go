package prompt_test

import (
	"strings"
	"testing"

	"github.com/temirov/llm-recipes/internal/chefs"
	"github.com/temirov/llm-recipes/internal/prompt"
	"github.com/temirov/llm-recipes/internal/recipe"
)

func defaultCatalog(t *testing.T) chefs.Catalog {
	t.Helper()
	catalog, err := chefs.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	return catalog
}

func brunchParameters() recipe.Parameters {
	parameters := recipe.Parameters{
		MichelinStars:   1,
		IngredientTier:  recipe.IngredientsEveryday,
		GastronomyLevel: 20,
		Occasion:        "Brunch",
		Servings:        2,
		PrepMinutes:     30,
		CookMinutes:     15,
		Equipment:       []string{"Oven"},
	}
	parameters.SetChefInfluence("thomas_keller", 80)
	return parameters
}

func TestBuildBrunchScenario(t *testing.T) {
	built := prompt.Build(brunchParameters(), defaultCatalog(t))
	expectedFragments := []string{
		"80% influence",
		"1 star",
		"worth a stop",
		"mostly traditional",
		"Brunch",
		"SERVINGS: 2",
		"- Thomas Keller (80% influence): Precise French techniques",
		"  Known for: Refined simplicity, perfect execution\n",
		"- Preparation time: approximately 30 minutes",
		"- Cooking time: approximately 15 minutes",
		"AVAILABLE EQUIPMENT: Oven\n",
		"**Complexity Score: [score]/10**",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(built, fragment) {
			t.Fatalf("prompt is missing %q:\n%s", fragment, built)
		}
	}
	unexpectedFragments := []string{"DIETARY RESTRICTIONS", "Prioritize seasonal", "Specialized equipment is available"}
	for _, fragment := range unexpectedFragments {
		if strings.Contains(built, fragment) {
			t.Fatalf("prompt unexpectedly contains %q", fragment)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	catalog := defaultCatalog(t)
	parameters := brunchParameters()
	parameters.SetChefInfluence("niki_nakayama", 45)
	parameters.DietaryRestrictions = []string{"Vegan", "Nut-Free"}
	first := prompt.Build(parameters, catalog)
	for attempt := 0; attempt < 20; attempt++ {
		if again := prompt.Build(parameters, catalog); again != first {
			t.Fatalf("prompt changed between builds")
		}
	}
}

func TestBuildChefOrderFollowsInsertion(t *testing.T) {
	parameters := recipe.DefaultParameters()
	parameters.SetChefInfluence("grant_achatz", 10)
	parameters.SetChefInfluence("clare_smyth", 50)
	parameters.SetChefInfluence("dominique_crenn", 95)
	built := prompt.Build(parameters, defaultCatalog(t))

	achatz := strings.Index(built, "Grant Achatz (10% influence): Subtle creative touches")
	smyth := strings.Index(built, "Clare Smyth (50% influence): Quality ingredients")
	crenn := strings.Index(built, "Dominique Crenn (95% influence): Poetic, artistic presentation")
	if achatz < 0 || smyth < 0 || crenn < 0 {
		t.Fatalf("missing chef lines:\n%s", built)
	}
	if !(achatz < smyth && smyth < crenn) {
		t.Fatalf("chef lines out of insertion order")
	}
}

func TestBuildInfluenceTierBoundaries(t *testing.T) {
	catalog := defaultCatalog(t)
	testCases := []struct {
		percent  int
		expected string
	}{
		{percent: 0, expected: catalog.Influence("gordon_ramsay", chefs.TierLow)},
		{percent: 29, expected: catalog.Influence("gordon_ramsay", chefs.TierLow)},
		{percent: 30, expected: catalog.Influence("gordon_ramsay", chefs.TierMedium)},
		{percent: 69, expected: catalog.Influence("gordon_ramsay", chefs.TierMedium)},
		{percent: 70, expected: catalog.Influence("gordon_ramsay", chefs.TierHigh)},
		{percent: 100, expected: catalog.Influence("gordon_ramsay", chefs.TierHigh)},
	}
	for _, testCase := range testCases {
		parameters := recipe.DefaultParameters()
		parameters.SetChefInfluence("gordon_ramsay", testCase.percent)
		built := prompt.Build(parameters, catalog)
		if !strings.Contains(built, testCase.expected) {
			t.Fatalf("percent %d: expected narrative %q", testCase.percent, testCase.expected)
		}
	}
}

func TestClassifyGastronomy(t *testing.T) {
	testCases := []struct {
		level    int
		expected prompt.GastronomyBucket
	}{
		{level: 0, expected: prompt.GastronomyTraditional},
		{level: 29, expected: prompt.GastronomyTraditional},
		{level: 30, expected: prompt.GastronomyBalanced},
		{level: 50, expected: prompt.GastronomyBalanced},
		{level: 70, expected: prompt.GastronomyBalanced},
		{level: 71, expected: prompt.GastronomyMolecular},
		{level: 100, expected: prompt.GastronomyMolecular},
	}
	for _, testCase := range testCases {
		if bucket := prompt.ClassifyGastronomy(testCase.level); bucket != testCase.expected {
			t.Fatalf("ClassifyGastronomy(%d) = %s, expected %s", testCase.level, bucket, testCase.expected)
		}
	}
}

func TestBuildGastronomyQualifierText(t *testing.T) {
	catalog := defaultCatalog(t)
	testCases := map[int]string{
		20: "GASTRONOMY LEVEL: 20% modern techniques (mostly traditional cooking methods)",
		70: "GASTRONOMY LEVEL: 70% modern techniques (balanced mix of traditional and modern techniques)",
		71: "GASTRONOMY LEVEL: 71% modern techniques (significant use of molecular gastronomy and modern techniques)",
	}
	for level, expected := range testCases {
		parameters := recipe.DefaultParameters()
		parameters.GastronomyLevel = level
		if built := prompt.Build(parameters, catalog); !strings.Contains(built, expected) {
			t.Fatalf("level %d: expected %q", level, expected)
		}
	}
}

func TestBuildOptionalSections(t *testing.T) {
	parameters := recipe.DefaultParameters()
	parameters.MichelinStars = 3
	parameters.IngredientTier = recipe.IngredientsLuxurious
	parameters.Seasonal = true
	parameters.SpecializedEquipment = true
	parameters.DietaryRestrictions = []string{"Vegetarian", "Gluten-Free", "Vegetarian"}
	parameters.Equipment = []string{"Sous Vide", "Smoker"}

	built := prompt.Build(parameters, defaultCatalog(t))
	expectedFragments := []string{
		"CHEF INFLUENCES: No specific chef selected. Create a general Michelin-star level recipe.\n",
		"MICHELIN STAR LEVEL: 3 star - Exceptional cuisine, worth a special journey\n",
		"INGREDIENT TYPE: Luxurious, hard-to-find ingredients",
		"\nPrioritize seasonal ingredients appropriate for the current time of year\n",
		"\nSpecialized equipment is available (sous vide, anti-griddle, etc.)\n",
		"DIETARY RESTRICTIONS: Vegetarian, Gluten-Free\n",
		"AVAILABLE EQUIPMENT: Sous Vide, Smoker\n",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(built, fragment) {
			t.Fatalf("prompt is missing %q:\n%s", fragment, built)
		}
	}
}

func TestBuildStarSuffixes(t *testing.T) {
	catalog := defaultCatalog(t)
	testCases := map[int]string{
		1: "1 star - Excellent cooking, worth a stop\n",
		2: "2 star - Excellent cooking, worth a detour\n",
		3: "3 star - Exceptional cuisine, worth a special journey\n",
		4: "MICHELIN STAR LEVEL: 4 star\n",
	}
	for stars, expected := range testCases {
		parameters := recipe.DefaultParameters()
		parameters.MichelinStars = stars
		if built := prompt.Build(parameters, catalog); !strings.Contains(built, expected) {
			t.Fatalf("stars %d: expected %q", stars, expected)
		}
	}
}

func TestBuildZeroValueParameters(t *testing.T) {
	built := prompt.Build(recipe.Parameters{}, chefs.Catalog{})
	for _, fragment := range []string{"OCCASION: \n", "SERVINGS: 0\n", "INGREDIENT TYPE: Everyday", "9. Possible ingredient substitutions"} {
		if !strings.Contains(built, fragment) {
			t.Fatalf("zero-value prompt is missing %q", fragment)
		}
	}
}

func TestBuildUnknownChef(t *testing.T) {
	parameters := recipe.DefaultParameters()
	parameters.SetChefInfluence("mystery_chef", 55)
	built := prompt.Build(parameters, defaultCatalog(t))
	if !strings.Contains(built, "- Unknown Chef (55% influence): \n  Known for: \n") {
		t.Fatalf("unexpected unknown chef rendering:\n%s", built)
	}
}

func TestSystemListsNineSections(t *testing.T) {
	system := prompt.System()
	for index, section := range prompt.RecipeSections {
		numbered := strings.TrimSpace(strings.Join([]string{string(rune('1' + index)), ". ", section}, ""))
		if !strings.Contains(system, numbered) {
			t.Fatalf("system prompt is missing %q", numbered)
		}
	}
	if len(prompt.RecipeSections) != 9 {
		t.Fatalf("expected nine sections, got %d", len(prompt.RecipeSections))
	}
}
