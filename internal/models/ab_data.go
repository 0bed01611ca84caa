package models

import (
	"abconfig/internal/providers"

	json "github.com/goccy/go-json"
)

// Variant identifies one of the closed set of A/B test variants.
// The ordinal is significant: it is the wire and storage index.
type Variant int

const (
	VariantA Variant = iota
	VariantB
	VariantC

	variantCount = 3
)

func (v Variant) String() string {
	switch v {
	case VariantA:
		return "A"
	case VariantB:
		return "B"
	case VariantC:
		return "C"
	}
	return "?"
}

func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "A":
		return VariantA, true
	case "B":
		return VariantB, true
	case "C":
		return VariantC, true
	}
	return 0, false
}

func validVariant(v Variant) bool {
	return v >= 0 && int(v) < variantCount
}

// AbData holds at most one payload per variant, addressed by the variant's
// ordinal. Sparse population is allowed: a variant can be set without lower
// ordinals being set first. Insertion order is kept for display only.
type AbData[T any] struct {
	data  [variantCount]T
	set   [variantCount]bool
	order []Variant
}

func (d *AbData[T]) Get(v Variant) (T, bool) {
	if !validVariant(v) || !d.set[v] {
		var zero T
		return zero, false
	}
	return d.data[v], true
}

func (d *AbData[T]) Set(v Variant, data T) {
	if !validVariant(v) {
		return
	}
	if !d.set[v] {
		d.order = append(d.order, v)
	}
	d.data[v] = data
	d.set[v] = true
}

func (d *AbData[T]) Contains(v Variant) bool {
	return validVariant(v) && d.set[v]
}

func (d *AbData[T]) Len() int {
	return len(d.order)
}

// Each visits the populated variants in insertion order.
func (d *AbData[T]) Each(fn func(v Variant, data T)) {
	for _, v := range d.order {
		fn(v, d.data[v])
	}
}

type abVariantEntry[T any] struct {
	Value Variant `json:"Value"`
	Data  T       `json:"Data"`
}

type abVariantList[T any] struct {
	Variants []abVariantEntry[T] `json:"Variants"`
}

func (d AbData[T]) MarshalJSON() ([]byte, error) {
	out := abVariantList[T]{Variants: make([]abVariantEntry[T], 0, len(d.order))}
	for _, v := range d.order {
		out.Variants = append(out.Variants, abVariantEntry[T]{Value: v, Data: d.data[v]})
	}
	return json.Marshal(out)
}

func (d *AbData[T]) UnmarshalJSON(raw []byte) error {
	var in abVariantList[T]
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	*d = AbData[T]{}
	for _, entry := range in.Variants {
		d.Set(entry.Value, entry.Data)
	}
	return nil
}

// AbConfig resolves the currently active variant of an AbData store.
// CurrentVariant starts unset; reading Data before any ApplyVariant yields
// the zero payload, which callers must treat as a valid state.
type AbConfig[T any] struct {
	name       string
	ab         *AbData[T]
	current    Variant
	hasCurrent bool
	logger     providers.Logger
}

func NewAbConfig[T any](name string, ab *AbData[T], logger providers.Logger) *AbConfig[T] {
	return &AbConfig[T]{
		name:   name,
		ab:     ab,
		logger: logger,
	}
}

func (c *AbConfig[T]) Name() string {
	return c.name
}

// Store exposes the underlying variant store. Shared, not a copy.
func (c *AbConfig[T]) Store() *AbData[T] {
	return c.ab
}

func (c *AbConfig[T]) CurrentVariant() (Variant, bool) {
	return c.current, c.hasCurrent
}

func (c *AbConfig[T]) Data() T {
	if !c.hasCurrent {
		var zero T
		return zero
	}
	data, _ := c.ab.Get(c.current)
	return data
}

// ApplyVariant switches the active variant. Applying a variant absent from
// the store is a logged no-op, never a fault.
func (c *AbConfig[T]) ApplyVariant(v Variant) {
	if !c.ab.Contains(v) {
		c.logger.Errorf(providers.TypeApp,
			"[AB] Cannot apply settings: config %s does not contain %s variant", c.name, v)
		return
	}

	c.current = v
	c.hasCurrent = true
	c.logger.Infof(providers.TypeApp,
		"[AB] Applied settings: config %s set to %s variant", c.name, v)
}
