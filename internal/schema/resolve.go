package schema

import (
	"fmt"
	"strings"

	"github.com/spacelens/spacelens/internal/sats"
)

// The special types are recognized by structural shape, not name: the
// server encodes them as ordinary products and sums with reserved member
// names.
const (
	identityField  = "__identity__"
	timestampField = "__timestamp_micros_since_unix_epoch__"
	durationField  = "__time_duration_micros__"
)

// Resolve converts a raw wire descriptor into a TypeNode. It is total:
// descriptors that match no known shape degrade to primitive "unknown"
// and the returned warning is non-empty. names maps typespace indexes to
// registered type names for Ref resolution; referenced entities are never
// expanded here, only named.
func Resolve(t *sats.AlgebraicType, names map[int]string) (TypeNode, string) {
	switch {
	case t == nil:
		return Primitive("unknown"), "missing type descriptor"

	case t.Scalar != "":
		return Primitive(scalarName(t.Scalar)), ""

	case t.Array != nil:
		inner, warn := Resolve(t.Array, names)
		return Sequence(inner), warn

	case t.Ref != nil:
		if name, ok := names[*t.Ref]; ok {
			return Reference(name), ""
		}
		return Reference(fmt.Sprintf("type_%d", *t.Ref)), ""

	case t.Sum != nil:
		if kind, ok := specialSum(t.Sum); ok {
			return Special(kind), ""
		}
		if payload, ok := optionPayload(t.Sum); ok {
			inner, warn := Resolve(payload, names)
			return Optional(inner), warn
		}
		return Primitive("unknown"),
			fmt.Sprintf("anonymous sum type (%d variants)", len(t.Sum.Variants))

	case t.Product != nil:
		if kind, ok := specialProduct(t.Product); ok {
			return Special(kind), ""
		}
		if len(t.Product.Elements) == 0 {
			return Primitive("unit"), ""
		}
		return Primitive("unknown"),
			fmt.Sprintf("anonymous product type (%d fields)", len(t.Product.Elements))

	case t.Unknown != "":
		return Primitive("unknown"), fmt.Sprintf("unrecognized type tag %q", t.Unknown)
	}
	return Primitive("unknown"), "empty type descriptor"
}

// scalarName maps wire scalar tags to their display names: Bool -> bool,
// U32 -> u32, String -> string.
func scalarName(tag string) string {
	return strings.ToLower(tag)
}

// specialProduct recognizes the product-shaped special types by their
// single reserved field name and scalar width.
func specialProduct(p *sats.ProductType) (string, bool) {
	if len(p.Elements) != 1 {
		return "", false
	}
	elem := p.Elements[0]
	name, ok := elem.Name.Get()
	if !ok {
		return "", false
	}
	switch name {
	case identityField:
		if elem.Type.Scalar == "U256" {
			return SpecialIdentity, true
		}
	case timestampField:
		if elem.Type.Scalar == "I64" {
			return SpecialTimestamp, true
		}
	case durationField:
		if elem.Type.Scalar == "I64" {
			return SpecialDuration, true
		}
	}
	return "", false
}

// specialSum recognizes ScheduledAt: a two-variant sum of Interval and
// Time.
func specialSum(s *sats.SumType) (string, bool) {
	if len(s.Variants) != 2 {
		return "", false
	}
	var hasInterval, hasTime bool
	for _, v := range s.Variants {
		switch name, _ := v.Name.Get(); name {
		case "Interval":
			hasInterval = true
		case "Time":
			hasTime = true
		}
	}
	if hasInterval && hasTime {
		return SpecialScheduledAt, true
	}
	return "", false
}

// optionPayload reports whether s is option-shaped and returns the
// descriptor of its payload variant. Two encodings appear on the wire:
// variants named Some/None, and an unnamed pair of one unit variant and
// one payload variant.
func optionPayload(s *sats.SumType) (*sats.AlgebraicType, bool) {
	if len(s.Variants) != 2 {
		return nil, false
	}

	var hasSome, hasNone bool
	for _, v := range s.Variants {
		switch name, _ := v.Name.Get(); name {
		case "Some":
			hasSome = true
		case "None":
			hasNone = true
		}
	}
	if hasSome && hasNone {
		for i := range s.Variants {
			if name, _ := s.Variants[i].Name.Get(); name == "Some" {
				return &s.Variants[i].Type, true
			}
		}
	}

	var unit, payload *sats.AlgebraicType
	for i := range s.Variants {
		t := &s.Variants[i].Type
		if t.Product != nil && len(t.Product.Elements) == 0 {
			unit = t
		} else {
			payload = t
		}
	}
	if unit != nil && payload != nil {
		return unwrapSingleField(payload), true
	}
	return nil, false
}

// unwrapSingleField peels a one-field product wrapper off an option
// payload, which is how the server encodes Option<T> for non-scalar T.
func unwrapSingleField(t *sats.AlgebraicType) *sats.AlgebraicType {
	if t.Product != nil && len(t.Product.Elements) == 1 {
		if _, ok := specialProduct(t.Product); !ok {
			return &t.Product.Elements[0].Type
		}
	}
	return t
}
