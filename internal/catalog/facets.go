package catalog

import (
	"sort"
	"strings"
	"unicode"

	"pceshop_back_end/internal/models"
)

const BrandFacetID = "brand"

// Facet is one filterable dimension with the values observed in scope.
type Facet struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// BuildFacets scans every product once. The brand facet comes first when at
// least one product has a brand; specification facets follow in the order
// their keys are first seen.
func BuildFacets(products []models.Product) []Facet {
	facets := []Facet{}

	brandSet := map[string]struct{}{}
	for _, p := range products {
		if p.Brand != "" {
			brandSet[p.Brand] = struct{}{}
		}
	}
	if len(brandSet) > 0 {
		facets = append(facets, Facet{
			ID:      BrandFacetID,
			Label:   "Brand",
			Options: sortedKeys(brandSet),
		})
	}

	var order []string
	values := map[string]map[string]struct{}{}
	for _, p := range products {
		for _, e := range p.Specification {
			set, seen := values[e.Key]
			if !seen {
				set = map[string]struct{}{}
				values[e.Key] = set
				order = append(order, e.Key)
			}
			set[e.Value.String()] = struct{}{}
		}
	}

	for _, key := range order {
		facets = append(facets, Facet{
			ID:      key,
			Label:   Label(key),
			Options: sortedKeys(values[key]),
		})
	}
	return facets
}

// Label turns "cpu_family" into "Cpu Family": underscores become spaces, the
// first letter of every run of letters is upper-cased and the rest lowered.
func Label(key string) string {
	var b strings.Builder
	b.Grow(len(key))

	prevLetter := false
	for _, r := range strings.ReplaceAll(key, "_", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
