// Package codebook defines named, typed, ordered integer code domains
// with labels and an inverse lookup, per the canonical data model's
// enum fields.
package codebook

import "fmt"

// Sentinel codes shared across codebooks that allow them (spec §4.1).
const (
	SentinelMissing      = 995
	SentinelPNTA         = 999
	SentinelNotImputable = 996
)

// Code is an entry in a codebook: an integer value with a human label.
type Code struct {
	Value int
	Label string
}

// Codebook is a named, ordered association between integer codes and
// labels for one canonical field.
type Codebook[T ~int] struct {
	// FieldName is the canonical field this codebook constrains (e.g.
	// "mode_type").
	FieldName string
	entries   []Code
	byValue   map[int]string
}

// NewCodebook builds a codebook from an ordered list of codes.
func NewCodebook[T ~int](fieldName string, entries []Code) *Codebook[T] {
	byValue := make(map[int]string, len(entries))
	for _, e := range entries {
		byValue[e.Value] = e.Label
	}
	return &Codebook[T]{
		FieldName: fieldName,
		entries:   entries,
		byValue:   byValue,
	}
}

// FromValue looks up a variant by its integer code, erroring if the
// code is not a member of this codebook.
func (c *Codebook[T]) FromValue(code int) (T, error) {
	if _, ok := c.byValue[code]; !ok {
		return T(0), fmt.Errorf("codebook %s: code %d is not a valid value", c.FieldName, code)
	}
	return T(code), nil
}

// LabelOf returns the label for a code, or "" if unknown.
func (c *Codebook[T]) LabelOf(code int) string {
	return c.byValue[code]
}

// Values returns every code in declaration order.
func (c *Codebook[T]) Values() []Code {
	return c.entries
}

// IsSentinel reports whether a code is one of the shared sentinel
// values (MISSING/PNTA/NOT_IMPUTABLE).
func IsSentinel(code int) bool {
	switch code {
	case SentinelMissing, SentinelPNTA, SentinelNotImputable:
		return true
	default:
		return false
	}
}

// Refine builds a narrower codebook that reuses a wider codebook's
// entries but pins its own canonical field name (spec §4.1's
// ArriveDow/DepartDow-from-TravelDow pattern). The narrow codebook
// "is a" TravelDow: every value it accepts is accepted by the parent.
func Refine[T ~int](parent *Codebook[T], fieldName string) *Codebook[T] {
	return NewCodebook[T](fieldName, parent.Values())
}
