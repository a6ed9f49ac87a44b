// Package chefs holds the read-only catalog of chef profiles and the
// influence narratives used when a chef is blended into a recipe prompt.
package chefs

import "strings"

const (
	lowInfluenceUpperBound    = 30
	mediumInfluenceUpperBound = 70
)

// Tier is the strength bucket of a chef influence percentage.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// InfluenceTier maps a percentage to its tier. Lower edges are inclusive:
// below 30 is low, 30 through 69 is medium, 70 and above is high.
// Values outside 0..100 fall into the nearest bucket.
func InfluenceTier(percent int) Tier {
	if percent >= mediumInfluenceUpperBound {
		return TierHigh
	}
	if percent >= lowInfluenceUpperBound {
		return TierMedium
	}
	return TierLow
}

// Profile describes one chef in the catalog.
type Profile struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Restaurants       []string `json:"restaurants" yaml:"restaurants"`
	Style             string   `json:"style" yaml:"style"`
	Signature         string   `json:"signature" yaml:"signature"`
	Techniques        []string `json:"techniques" yaml:"techniques"`
	SpecialtyCuisines []string `json:"specialty_cuisines" yaml:"specialty_cuisines"`
	FamousDishes      []string `json:"famous_dishes" yaml:"famous_dishes"`
	Bio               string   `json:"bio" yaml:"bio"`
}

// InfluenceDescriptors holds the per-tier narrative for each chef id.
type InfluenceDescriptors map[string]map[Tier]string

// Catalog is an immutable lookup table. Build it once and pass it around.
type Catalog struct {
	order       []string
	profiles    map[string]Profile
	descriptors InfluenceDescriptors
}

// NewCatalog copies the given profiles and descriptors into a catalog.
// Profiles keep their given order; a repeated id replaces the earlier entry.
func NewCatalog(profiles []Profile, descriptors InfluenceDescriptors) Catalog {
	catalog := Catalog{
		profiles:    make(map[string]Profile, len(profiles)),
		descriptors: make(InfluenceDescriptors, len(descriptors)),
	}
	for _, profile := range profiles {
		if _, exists := catalog.profiles[profile.ID]; !exists {
			catalog.order = append(catalog.order, profile.ID)
		}
		catalog.profiles[profile.ID] = cloneProfile(profile)
	}
	for chefID, narratives := range descriptors {
		copied := make(map[Tier]string, len(narratives))
		for tier, narrative := range narratives {
			copied[tier] = narrative
		}
		catalog.descriptors[chefID] = copied
	}
	return catalog
}

// Profile returns the chef with the given id.
func (catalog Catalog) Profile(chefID string) (Profile, bool) {
	profile, found := catalog.profiles[chefID]
	if !found {
		return Profile{}, false
	}
	return cloneProfile(profile), true
}

// Profiles returns every chef in catalog order.
func (catalog Catalog) Profiles() []Profile {
	out := make([]Profile, 0, len(catalog.order))
	for _, chefID := range catalog.order {
		out = append(out, cloneProfile(catalog.profiles[chefID]))
	}
	return out
}

// IDs returns the chef ids in catalog order.
func (catalog Catalog) IDs() []string {
	out := make([]string, len(catalog.order))
	copy(out, catalog.order)
	return out
}

// Influence returns the narrative for the chef at the given tier, or an
// empty string when none is registered.
func (catalog Catalog) Influence(chefID string, tier Tier) string {
	return catalog.descriptors[chefID][tier]
}

// Lookup resolves an id case-insensitively, also accepting the display name
// ("Thomas Keller") or a dashed form ("thomas-keller").
func (catalog Catalog) Lookup(reference string) (Profile, bool) {
	normalized := normalizeReference(reference)
	if profile, found := catalog.Profile(normalized); found {
		return profile, true
	}
	for _, chefID := range catalog.order {
		profile := catalog.profiles[chefID]
		if normalizeReference(profile.Name) == normalized {
			return cloneProfile(profile), true
		}
	}
	return Profile{}, false
}

func normalizeReference(reference string) string {
	lowered := strings.ToLower(strings.TrimSpace(reference))
	replacer := strings.NewReplacer("-", "_", " ", "_", "é", "e")
	return replacer.Replace(lowered)
}

func cloneProfile(profile Profile) Profile {
	profile.Restaurants = append([]string(nil), profile.Restaurants...)
	profile.Techniques = append([]string(nil), profile.Techniques...)
	profile.SpecialtyCuisines = append([]string(nil), profile.SpecialtyCuisines...)
	profile.FamousDishes = append([]string(nil), profile.FamousDishes...)
	return profile
}
