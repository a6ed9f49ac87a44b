// Package recipe defines the generation input record, the result record and
// the helpers that derive a title and complexity score from raw model text.
package recipe

import "strings"

// IngredientTier selects between everyday and luxurious ingredients.
type IngredientTier string

const (
	IngredientsEveryday  IngredientTier = "everyday"
	IngredientsLuxurious IngredientTier = "luxurious"
)

const (
	DefaultMichelinStars = 1
	DefaultServings      = 4
	DefaultPrepMinutes   = 60
	DefaultCookMinutes   = 60
)

// ChefInfluence pairs a catalog chef id with an influence percentage.
type ChefInfluence struct {
	ChefID  string `json:"chef_id"`
	Percent int    `json:"percent"`
}

// Parameters is the single input record for a generation. The zero value is
// usable; DefaultParameters mirrors the values a fresh form starts with.
type Parameters struct {
	Chefs                []ChefInfluence `json:"chefs"`
	MichelinStars        int             `json:"michelin_stars"`
	IngredientTier       IngredientTier  `json:"ingredient_type"`
	Seasonal             bool            `json:"seasonal"`
	GastronomyLevel      int             `json:"gastronomy_level"`
	SpecializedEquipment bool            `json:"specialized_equipment"`
	DietaryRestrictions  []string        `json:"dietary_restrictions"`
	Occasion             string          `json:"occasion"`
	Servings             int             `json:"servings"`
	PrepMinutes          int             `json:"prep_time"`
	CookMinutes          int             `json:"cook_time"`
	Equipment            []string        `json:"equipment"`
}

// DefaultParameters returns the defaults used when nothing is selected.
func DefaultParameters() Parameters {
	return Parameters{
		MichelinStars:  DefaultMichelinStars,
		IngredientTier: IngredientsEveryday,
		Servings:       DefaultServings,
		PrepMinutes:    DefaultPrepMinutes,
		CookMinutes:    DefaultCookMinutes,
	}
}

// SetChefInfluence records a chef influence. A chef that is already present
// keeps its position and takes the new percentage.
func (parameters *Parameters) SetChefInfluence(chefID string, percent int) {
	for index := range parameters.Chefs {
		if parameters.Chefs[index].ChefID == chefID {
			parameters.Chefs[index].Percent = percent
			return
		}
	}
	parameters.Chefs = append(parameters.Chefs, ChefInfluence{ChefID: chefID, Percent: percent})
}

// AddDietaryRestriction adds a tag unless it is already present.
func (parameters *Parameters) AddDietaryRestriction(tag string) {
	parameters.DietaryRestrictions = appendUnique(parameters.DietaryRestrictions, tag)
}

// AddEquipment adds an equipment tag unless it is already present.
func (parameters *Parameters) AddEquipment(tag string) {
	parameters.Equipment = appendUnique(parameters.Equipment, tag)
}

// Clone returns a deep copy so results can echo parameters without aliasing.
func (parameters Parameters) Clone() Parameters {
	parameters.Chefs = append([]ChefInfluence(nil), parameters.Chefs...)
	parameters.DietaryRestrictions = append([]string(nil), parameters.DietaryRestrictions...)
	parameters.Equipment = append([]string(nil), parameters.Equipment...)
	return parameters
}

// UniqueTags trims tags and drops empty and repeated ones, keeping first-seen order.
func UniqueTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		out = appendUnique(out, tag)
	}
	return out
}

func appendUnique(tags []string, tag string) []string {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return tags
	}
	for _, existing := range tags {
		if existing == trimmed {
			return tags
		}
	}
	return append(tags, trimmed)
}
