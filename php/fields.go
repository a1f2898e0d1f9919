package php

import (
	"strings"

	"blockc/block"
	"blockc/gen"
)

// choice maps a dropdown field to its PHP rendering. An unset field takes
// def.
func choice(b block.Block, field, def string, options map[string]string) (string, error) {
	v := b.Field(field)
	if v == "" {
		v = def
	}
	out, ok := options[v]
	if !ok {
		return "", &gen.FieldError{Kind: b.Kind(), Field: field, Value: v}
	}
	return out, nil
}

// mode reads a MODE field restricted to the modes a block offers.
func mode(b block.Block, def string, allowed ...gen.Mode) (gen.Mode, error) {
	v := b.Field("MODE")
	if v == "" {
		v = def
	}
	m, ok := gen.ParseMode(v)
	if ok {
		for _, a := range allowed {
			if m == a {
				return m, nil
			}
		}
	}
	return 0, &gen.FieldError{Kind: b.Kind(), Field: "MODE", Value: v}
}

// anchor reads a WHERE-style field.
func anchor(b block.Block, field, def string) (gen.Anchor, error) {
	v := b.Field(field)
	if v == "" {
		v = def
	}
	a, ok := gen.ParseAnchor(v)
	if !ok {
		return 0, &gen.FieldError{Kind: b.Kind(), Field: field, Value: v}
	}
	return a, nil
}

var quoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote renders s as a single-quoted PHP string.
func quote(s string) string {
	return "'" + quoter.Replace(s) + "'"
}

// call renders a function call with arguments already embedded at Comma.
func call(name string, args ...string) gen.Result {
	return gen.Expr(name+"("+strings.Join(args, ", ")+")", Call)
}

// arg embeds r as a call argument.
func arg(r gen.Result) string {
	return Table.Wrap(r, Comma)
}

// values emits several slots as call arguments, each with its default.
func values(c *gen.Compilation, b block.Block, slotsAndDefaults ...string) ([]string, error) {
	out := make([]string, 0, len(slotsAndDefaults)/2)
	for i := 0; i+1 < len(slotsAndDefaults); i += 2 {
		code, err := c.ValueToCode(b, slotsAndDefaults[i], Comma, slotsAndDefaults[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, nil
}
