// Package render turns a schema model into operator-facing output: a
// colored hierarchical text tree, a lossless JSON document, or the raw
// fetched bytes.
//
// Coloring is assigned per semantic role. The role classification is part
// of the contract; the concrete color mapping is just the default palette
// and callers may substitute their own.
package render

import "github.com/fatih/color"

// Role classifies a rendered token for coloring.
type Role int

const (
	RoleHeader     Role = iota // kind section header: TABLES, STRUCTS, ENUMS
	RoleEntity                 // entity name in its header line
	RolePrimitive              // scalar type name
	RoleSpecial                // built-in special type name
	RoleReference              // referenced entity name
	RoleAnnotation             // counts, primary keys, warnings
)

// Palette maps roles to colors. Missing roles render unstyled.
type Palette map[Role]*color.Color

// DefaultPalette is the stock terminal color mapping. Escape emission
// itself is governed by the color package's NoColor detection.
func DefaultPalette() Palette {
	return Palette{
		RoleHeader:     color.New(color.FgYellow, color.Bold),
		RoleEntity:     color.New(color.Bold),
		RolePrimitive:  color.New(color.FgCyan),
		RoleSpecial:    color.New(color.FgYellow),
		RoleReference:  color.New(color.FgGreen),
		RoleAnnotation: color.New(color.Faint),
	}
}

func (p Palette) paint(role Role, s string) string {
	c, ok := p[role]
	if !ok || c == nil {
		return s
	}
	return c.Sprint(s)
}
