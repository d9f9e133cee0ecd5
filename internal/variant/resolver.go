// Package variant maps chosen option values to the single matching product
// variant and answers availability questions for hypothetical selections.
package variant

import "storefront/internal/domain"

// Selection maps option names to chosen values, e.g. {"Color": "Red"}.
type Selection map[string]string

// OptionGroup is one control group worth of choices for a single option name.
type OptionGroup struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Options enumerates the distinct option names across all variants and the
// distinct values seen for each. Names are ordered by first appearance,
// values by insertion order.
func Options(variants []domain.ProductVariant) []OptionGroup {
	var groups []OptionGroup
	index := make(map[string]int)
	seen := make(map[string]map[string]bool)

	for _, v := range variants {
		for _, opt := range v.Options {
			i, ok := index[opt.Name]
			if !ok {
				i = len(groups)
				index[opt.Name] = i
				groups = append(groups, OptionGroup{Name: opt.Name})
				seen[opt.Name] = make(map[string]bool)
			}
			if !seen[opt.Name][opt.Value] {
				seen[opt.Name][opt.Value] = true
				groups[i].Values = append(groups[i].Values, opt.Value)
			}
		}
	}
	return groups
}

// SelectionOf projects a variant's option pairs into a Selection. A nil
// variant yields an empty selection.
func SelectionOf(v *domain.ProductVariant) Selection {
	sel := make(Selection)
	if v == nil {
		return sel
	}
	for _, opt := range v.Options {
		sel[opt.Name] = opt.Value
	}
	return sel
}

// Resolve returns the variant whose every option pair matches the selection,
// or nil if none does. Variants are assumed option-unique; if that does not
// hold the first match in list order wins.
func Resolve(variants []domain.ProductVariant, sel Selection) *domain.ProductVariant {
	for i := range variants {
		if matches(variants[i], sel) {
			return &variants[i]
		}
	}
	return nil
}

func matches(v domain.ProductVariant, sel Selection) bool {
	for _, opt := range v.Options {
		if sel[opt.Name] != opt.Value {
			return false
		}
	}
	return true
}

// IsAvailable overrides one option value in the selection, resolves the
// result, and reports the matched variant's availability. A combination that
// resolves to no variant at all is unavailable.
func IsAvailable(variants []domain.ProductVariant, sel Selection, name, value string) bool {
	v := Resolve(variants, sel.with(name, value))
	return v != nil && v.Available
}

// Choose applies a selection change on top of the current variant's options.
// If the new combination resolves to no variant the current variant is
// returned unchanged; an invalid choice never downgrades to a partial match.
func Choose(variants []domain.ProductVariant, current *domain.ProductVariant, name, value string) *domain.ProductVariant {
	if v := Resolve(variants, SelectionOf(current).with(name, value)); v != nil {
		return v
	}
	return current
}

func (s Selection) with(name, value string) Selection {
	next := make(Selection, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	next[name] = value
	return next
}
