package variants

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NameSeparator joins the chosen option values into a variant's display name.
const NameSeparator = " / "

// DefaultStock is the stock every freshly generated variant starts with.
const DefaultStock = 100

var (
	ErrEmptyGroupName  = errors.New("option group name is required")
	ErrEmptyOptions    = errors.New("option group needs at least one value")
	ErrDuplicateGroup  = errors.New("option group already exists")
	ErrDuplicateOption = errors.New("option value is listed twice")
)

// OptionGroup is one axis of product variation, e.g. Size: [S, M, L].
type OptionGroup struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Variant is one purchasable combination of a value from every group.
// Price is kept as text because it is edited as form input until submission.
type Variant struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Price   string            `json:"price"`
	Stock   int               `json:"stock"`
	Options map[string]string `json:"options"`
}

// ParseOptions splits a comma separated list, trimming whitespace and
// dropping empty entries.
func ParseOptions(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// NewOptionGroup builds a group from a name and a raw "S, M, L" value list.
// Values are compared case-insensitively, so "S, s" is a duplicate.
func NewOptionGroup(name, rawOptions string) (OptionGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return OptionGroup{}, ErrEmptyGroupName
	}
	opts := ParseOptions(rawOptions)
	if len(opts) == 0 {
		return OptionGroup{}, ErrEmptyOptions
	}
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		key := strings.ToLower(o)
		if seen[key] {
			return OptionGroup{}, fmt.Errorf("%q: %w", o, ErrDuplicateOption)
		}
		seen[key] = true
	}
	return OptionGroup{Name: name, Options: opts}, nil
}

// AddOptionGroup appends a new group to existing and regenerates the full
// variant set from scratch. existing is never modified.
//
// When the new group is invalid the returned groups are existing itself,
// the variant slice is nil and err says why; callers keep their state.
func AddOptionGroup(existing []OptionGroup, name, rawOptions, price string) ([]OptionGroup, []Variant, error) {
	group, err := NewOptionGroup(name, rawOptions)
	if err != nil {
		return existing, nil, err
	}
	for _, g := range existing {
		if g.Name == group.Name {
			return existing, nil, ErrDuplicateGroup
		}
	}

	groups := make([]OptionGroup, 0, len(existing)+1)
	groups = append(groups, existing...)
	groups = append(groups, group)

	return groups, Generate(groups, price), nil
}

// Generate returns the Cartesian product of the groups' options. The last
// group varies fastest. No groups means no variants.
func Generate(groups []OptionGroup, price string) []Variant {
	total := Count(groups)
	if total == 0 {
		return []Variant{}
	}

	out := make([]Variant, 0, total)

	// idx holds the current option index per group, like an odometer.
	idx := make([]int, len(groups))
	values := make([]string, len(groups))
	for {
		opts := make(map[string]string, len(groups))
		for g, group := range groups {
			values[g] = group.Options[idx[g]]
			opts[group.Name] = values[g]
		}
		out = append(out, Variant{
			ID:      uuid.NewString(),
			Name:    strings.Join(values, NameSeparator),
			Price:   price,
			Stock:   DefaultStock,
			Options: opts,
		})

		g := len(groups) - 1
		for ; g >= 0; g-- {
			idx[g]++
			if idx[g] < len(groups[g].Options) {
				break
			}
			idx[g] = 0
		}
		if g < 0 {
			return out
		}
	}
}

// Count is the number of variants Generate would produce.
func Count(groups []OptionGroup) int {
	if len(groups) == 0 {
		return 0
	}
	n := 1
	for _, g := range groups {
		n *= len(g.Options)
	}
	return n
}
