// Package catalog holds the product specification filter engine: parsing
// of "key:value" constraints, matching them against product specifications
// and computing the filter facets of a category.
package catalog

import (
	"errors"
	"log"
	"math/big"
	"strings"

	"pceshop_back_end/internal/models"
)

// ErrEmptyKey is reported for a constraint such as ":8".
var ErrEmptyKey = errors.New("specification constraint has an empty key")

// Constraint is one parsed "key:value" specification filter.
type Constraint struct {
	Key   string
	Value string

	number *big.Int
}

// ParseConstraint splits raw on its first ':'. ok is false when raw has no
// ':' at all; such input is skipped silently by callers.
func ParseConstraint(raw string) (c Constraint, ok bool, err error) {
	key, value, found := strings.Cut(raw, ":")
	if !found {
		return Constraint{}, false, nil
	}
	if key == "" {
		return Constraint{}, true, ErrEmptyKey
	}

	c = Constraint{Key: key, Value: value}
	if isDigits(value) {
		c.number, _ = new(big.Int).SetString(value, 10)
	}
	return c, true, nil
}

// ParseConstraints parses a comma separated list. Malformed entries are
// skipped; entries that fail to parse are logged and skipped too, so one bad
// constraint never discards the others.
func ParseConstraints(specs string) []Constraint {
	if specs == "" {
		return nil
	}

	var out []Constraint
	for _, raw := range strings.Split(specs, ",") {
		c, ok, err := ParseConstraint(raw)
		if !ok {
			continue
		}
		if err != nil {
			log.Printf("⚠️ Skipping spec filter %q: %v", raw, err)
			continue
		}
		out = append(out, c)
	}
	return out
}

// Matches reports whether spec satisfies c.
//
// A value made only of digits matches both the number and the string form
// ("8" and 8). Any other value is a case-insensitive substring match on the
// stringified specification value.
func (c Constraint) Matches(spec models.Specification) bool {
	v, ok := spec.Get(c.Key)
	if !ok {
		return false
	}
	if isDigits(c.Value) {
		if v.EqualsInteger(c.number) {
			return true
		}
		return v.EqualsString(c.Value)
	}
	return strings.Contains(strings.ToLower(v.String()), strings.ToLower(c.Value))
}

// Apply keeps the products matching every constraint, preserving order.
func Apply(products []models.Product, constraints []Constraint) []models.Product {
	if len(constraints) == 0 {
		return products
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesAll(p.Specification, constraints) {
			out = append(out, p)
		}
	}
	return out
}

func matchesAll(spec models.Specification, constraints []Constraint) bool {
	for _, c := range constraints {
		if !c.Matches(spec) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
