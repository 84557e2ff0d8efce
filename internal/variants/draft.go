package variants

import "sync"

// Draft holds the option groups and variants of a product while it is
// being authored. Groups and variants are always replaced together.
type Draft struct {
	mu            sync.RWMutex
	price         string
	groups        []OptionGroup
	variants      []Variant
	preserveEdits bool
}

// DraftOption configures a Draft.
type DraftOption func(*Draft)

// WithPreserveEdits keeps hand-edited price and stock across regeneration
// for combinations that still exist. Without it every regeneration resets
// all variants to the defaults.
func WithPreserveEdits() DraftOption {
	return func(d *Draft) { d.preserveEdits = true }
}

// WithState seeds the draft with groups and variants a client already
// holds, including its hand edits. Both are copied.
func WithState(groups []OptionGroup, vs []Variant) DraftOption {
	return func(d *Draft) {
		d.groups = copyGroups(groups)
		d.variants = copyVariants(vs)
	}
}

// NewDraft starts an empty draft whose variants default to price.
func NewDraft(price string, opts ...DraftOption) *Draft {
	d := &Draft{price: price, groups: []OptionGroup{}, variants: []Variant{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddGroup adds an option group and regenerates the variants. An invalid
// group leaves the draft untouched and the error is returned.
func (d *Draft) AddGroup(name, rawOptions string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	groups, generated, err := AddOptionGroup(d.groups, name, rawOptions, d.price)
	if err != nil {
		return err
	}
	if d.preserveEdits {
		carryEdits(d.variants, generated)
	}
	d.groups, d.variants = groups, generated
	return nil
}

// Groups returns a copy of the accumulated option groups.
func (d *Draft) Groups() []OptionGroup {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return copyGroups(d.groups)
}

// Variants returns a copy of the current variants. Reading never
// regenerates, so IDs are stable between calls.
func (d *Draft) Variants() []Variant {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return copyVariants(d.variants)
}

func copyGroups(groups []OptionGroup) []OptionGroup {
	out := make([]OptionGroup, len(groups))
	for i, g := range groups {
		out[i] = OptionGroup{Name: g.Name, Options: append([]string(nil), g.Options...)}
	}
	return out
}

func copyVariants(vs []Variant) []Variant {
	out := make([]Variant, len(vs))
	for i, v := range vs {
		out[i] = v
		out[i].Options = make(map[string]string, len(v.Options))
		for k, val := range v.Options {
			out[i].Options[k] = val
		}
	}
	return out
}

// carryEdits copies price and stock from each old variant onto the new
// variants whose option mapping contains all of the old one's choices.
func carryEdits(old, generated []Variant) {
	for _, prev := range old {
		for i := range generated {
			if containsOptions(generated[i].Options, prev.Options) {
				generated[i].Price = prev.Price
				generated[i].Stock = prev.Stock
			}
		}
	}
}

func containsOptions(set, sub map[string]string) bool {
	for k, v := range sub {
		if set[k] != v {
			return false
		}
	}
	return true
}
