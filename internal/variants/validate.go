package variants

import (
	"errors"
	"fmt"
	"strings"
)

var ErrVariantMismatch = errors.New("variants do not match option groups")

// NormalizeGroups trims group names and values the same way NewOptionGroup
// does and rejects empty or repeated groups. Used for groups that come
// back from a client rather than through AddOptionGroup.
func NormalizeGroups(groups []OptionGroup) ([]OptionGroup, error) {
	out := make([]OptionGroup, 0, len(groups))
	for _, g := range groups {
		ng, err := NewOptionGroup(g.Name, strings.Join(g.Options, ","))
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		for _, prev := range out {
			if prev.Name == ng.Name {
				return nil, fmt.Errorf("group %q: %w", ng.Name, ErrDuplicateGroup)
			}
		}
		out = append(out, ng)
	}
	return out, nil
}

// CheckVariants verifies that vs is exactly the Cartesian product of
// groups: one variant per combination and nothing else.
func CheckVariants(groups []OptionGroup, vs []Variant) error {
	if len(vs) != Count(groups) {
		return fmt.Errorf("%w: want %d variants, got %d", ErrVariantMismatch, Count(groups), len(vs))
	}

	seen := make(map[string]bool, len(vs))
	for _, v := range vs {
		if len(v.Options) != len(groups) {
			return fmt.Errorf("%w: %q", ErrVariantMismatch, v.Name)
		}
		values := make([]string, len(groups))
		for i, g := range groups {
			val, ok := v.Options[g.Name]
			if !ok || !contains(g.Options, val) {
				return fmt.Errorf("%w: %q", ErrVariantMismatch, v.Name)
			}
			values[i] = val
		}
		key := strings.Join(values, NameSeparator)
		if seen[key] {
			return fmt.Errorf("%w: duplicate %q", ErrVariantMismatch, key)
		}
		seen[key] = true
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
