package schema

import (
	"strconv"

	"github.com/spacelens/spacelens/internal/errs"
	"github.com/spacelens/spacelens/internal/logger"
	"github.com/spacelens/spacelens/internal/sats"
)

// Build normalizes a decoded wire document into a Model. Tables come from
// the document's table registry; named typespace entries that are not
// table row types become structs (products) and enums (sums). Bare
// builtin and ref aliases carry no structure of their own and are
// skipped.
//
// A duplicate name within one kind fails the build: silently overwriting
// would hide a source-data anomaly and make filtering ambiguous. A member
// whose type cannot be recognized does not fail the build; it is degraded
// to primitive "unknown" with a warning on the member and a log line.
func Build(raw *sats.Schema, log *logger.Logger) (*Model, error) {
	if log == nil {
		log = logger.New(nil)
	}

	names := make(map[int]string, len(raw.Types))
	for _, nt := range raw.Types {
		names[nt.Ty] = nt.Name.Name
	}
	tableRefs := make(map[int]bool, len(raw.Tables))

	m := NewModel()

	for _, entry := range raw.Tables {
		if _, exists := m.Tables[entry.Name]; exists {
			return nil, errs.Newf(errs.ErrKindDuplicateDefinition,
				"duplicate table %q", entry.Name)
		}
		td := raw.TypeAt(entry.ProductTypeRef)
		if td == nil || td.Product == nil {
			return nil, errs.Newf(errs.ErrKindMalformedSchema,
				"table %q row type ref %d is not a product", entry.Name, entry.ProductTypeRef)
		}
		tableRefs[entry.ProductTypeRef] = true

		m.Tables[entry.Name] = Table{
			Name:       entry.Name,
			Fields:     buildFields(td.Product, names, entry.Name, log),
			PrimaryKey: entry.PrimaryKey,
		}
	}

	for _, nt := range raw.Types {
		if tableRefs[nt.Ty] {
			continue
		}
		td := raw.TypeAt(nt.Ty)
		if td == nil {
			return nil, errs.Newf(errs.ErrKindMalformedSchema,
				"type %q ref %d is out of range", nt.Name.Name, nt.Ty)
		}

		switch {
		case td.Sum != nil:
			if _, exists := m.Enums[nt.Name.Name]; exists {
				return nil, errs.Newf(errs.ErrKindDuplicateDefinition,
					"duplicate enum %q", nt.Name.Name)
			}
			m.Enums[nt.Name.Name] = buildEnum(nt.Name.Name, td.Sum, names, log)

		case td.Product != nil:
			if _, exists := m.Structs[nt.Name.Name]; exists {
				return nil, errs.Newf(errs.ErrKindDuplicateDefinition,
					"duplicate struct %q", nt.Name.Name)
			}
			m.Structs[nt.Name.Name] = buildStruct(nt.Name.Name, td.Product, names, log)

		default:
			// Alias of a builtin or another ref; nothing to show.
			log.Debugf("skipping type alias %q", nt.Name.Name)
		}
	}

	return m, nil
}

func buildFields(p *sats.ProductType, names map[int]string, owner string, log *logger.Logger) []Field {
	fields := make([]Field, 0, len(p.Elements))
	for i, elem := range p.Elements {
		name, ok := elem.Name.Get()
		if !ok {
			// Tuple element; positional name like the source renders it.
			name = strconv.Itoa(i)
		}
		node, warn := Resolve(&elem.Type, names)
		if warn != "" {
			log.Warnf("%s.%s: %s, degraded to unknown", owner, name, warn)
		}
		fields = append(fields, Field{Name: name, Type: node, Warning: warn})
	}
	return fields
}

func buildStruct(name string, p *sats.ProductType, names map[int]string, log *logger.Logger) Struct {
	if kind, ok := specialProduct(p); ok {
		return Struct{Name: name, Special: kind}
	}
	return Struct{Name: name, Fields: buildFields(p, names, name, log)}
}

func buildEnum(name string, s *sats.SumType, names map[int]string, log *logger.Logger) Enum {
	if kind, ok := specialSum(s); ok {
		return Enum{Name: name, Special: kind}
	}

	variants := make([]Variant, 0, len(s.Variants))
	for i, v := range s.Variants {
		vname, ok := v.Name.Get()
		if !ok {
			vname = strconv.Itoa(i)
		}
		if v.Type.Product != nil && len(v.Type.Product.Elements) == 0 {
			// Unit variant.
			variants = append(variants, Variant{Name: vname})
			continue
		}
		node, warn := Resolve(&v.Type, names)
		if warn != "" {
			log.Warnf("%s.%s: %s, degraded to unknown", name, vname, warn)
		}
		variants = append(variants, Variant{Name: vname, Payload: &node, Warning: warn})
	}
	return Enum{Name: name, Variants: variants}
}
