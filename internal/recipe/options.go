package recipe

import "strings"

// DefaultOccasion is the occasion a fresh form starts with.
const DefaultOccasion = "Everyday Meal"

// KnownDietaryRestrictions lists the dietary tags offered to users.
var KnownDietaryRestrictions = []string{
	"Vegetarian", "Vegan", "Gluten-Free", "Dairy-Free", "Nut-Free", "Keto", "Low-Carb",
}

// KnownOccasions lists the occasions offered to users.
var KnownOccasions = []string{
	"Everyday Meal",
	"Dinner Party",
	"Romantic Dinner",
	"Holiday Celebration",
	"Special Occasion",
	"Tasting Menu",
	"Family Gathering",
	"Brunch",
}

// KnownEquipment lists the equipment tags offered to users.
var KnownEquipment = []string{
	"Oven",
	"Stovetop",
	"Blender/Food Processor",
	"Stand Mixer",
	"Sous Vide",
	"Pressure Cooker/Instant Pot",
	"Grill",
	"Smoker",
}

// DefaultEquipment is preselected on a fresh form.
var DefaultEquipment = []string{"Oven", "Stovetop"}

// UnknownTags returns the tags that do not match a known option,
// ignoring case. Free-form tags are allowed; callers may warn about them.
func UnknownTags(tags []string, known []string) []string {
	var unknown []string
	for _, tag := range tags {
		matched := false
		for _, option := range known {
			if strings.EqualFold(strings.TrimSpace(tag), option) {
				matched = true
				break
			}
		}
		if !matched {
			unknown = append(unknown, tag)
		}
	}
	return unknown
}

// CanonicalTag returns the known spelling of tag when one matches ignoring
// case, otherwise the trimmed tag.
func CanonicalTag(tag string, known []string) string {
	trimmed := strings.TrimSpace(tag)
	for _, option := range known {
		if strings.EqualFold(trimmed, option) {
			return option
		}
	}
	return trimmed
}
