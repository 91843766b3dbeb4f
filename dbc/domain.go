package dbc

import (
	"fmt"
	"slices"

	"github.com/golangcan/godbc/internal/lexer"
)

// AttributeDomain is the decoded body of an attribute definition.
type AttributeDomain struct {
	Name string
	Type AttributeType
	// Min and Max bound INT, HEX and FLOAT attributes.
	Min float64
	Max float64
	// Values lists the labels of an ENUM attribute in declaration order.
	Values []string
}

// Contains reports whether v is an allowed value of the domain. Numeric
// domains with Min == Max == 0 are unbounded.
func (d AttributeDomain) Contains(v AttributeValue) bool {
	switch d.Type {
	case AttributeString:
		return v.Kind() == ValueString
	case AttributeEnum:
		switch v.Kind() {
		case ValueString:
			return slices.Contains(d.Values, v.Text())
		case ValueNone:
			return false
		default:
			idx := v.Float()
			return idx >= 0 && idx < float64(len(d.Values)) && idx == float64(int(idx))
		}
	default:
		if v.Kind() == ValueString || v.Kind() == ValueNone {
			return false
		}
		if d.Min == 0 && d.Max == 0 {
			return true
		}
		f := v.Float()
		return f >= d.Min && f <= d.Max
	}
}

// ParseAttributeDomain decodes the text of a BA_DEF_ line, for example
// `"GenMsgCycleTime" INT 0 65535` or `"VFrameFormat" ENUM "Std","Ext"`.
func ParseAttributeDomain(text string) (AttributeDomain, error) {
	c := lexer.New([]byte(text))
	var d AttributeDomain
	wrap := func(err error) error {
		return fmt.Errorf("attribute definition %q: %w", text, err)
	}

	c.Spaces0()
	name, err := c.Quoted()
	if err != nil {
		return d, wrap(err)
	}
	d.Name = name
	if err := c.Space1(); err != nil {
		return d, wrap(err)
	}
	keyword, err := c.Ident()
	if err != nil {
		return d, wrap(err)
	}

	switch keyword {
	case "INT", "HEX":
		d.Type = AttributeInt
		if keyword == "HEX" {
			d.Type = AttributeHex
		}
		var lo, hi int64
		if err := sequence(c.Space1, intInto(c, &lo), c.Space1, intInto(c, &hi)); err != nil {
			return d, wrap(err)
		}
		d.Min, d.Max = float64(lo), float64(hi)
	case "FLOAT":
		d.Type = AttributeFloat
		if err := sequence(c.Space1, floatInto(c, &d.Min), c.Space1, floatInto(c, &d.Max)); err != nil {
			return d, wrap(err)
		}
	case "STRING":
		d.Type = AttributeString
	case "ENUM":
		d.Type = AttributeEnum
		for {
			c.Spaces0()
			label, err := c.Quoted()
			if err != nil {
				return d, wrap(err)
			}
			d.Values = append(d.Values, label)
			c.Spaces0()
			if c.Char(',') != nil {
				break
			}
		}
	default:
		return d, wrap(fmt.Errorf("unknown attribute type %q", keyword))
	}

	c.Spaces0()
	if !c.AtEOF() {
		return d, wrap(fmt.Errorf("unexpected trailing text %q", c.Rest()))
	}
	return d, nil
}

func sequence(steps ...func() error) error {
	for _, s := range steps {
		if err := s(); err != nil {
			return err
		}
	}
	return nil
}

func intInto(c *lexer.Cursor, dst *int64) func() error {
	return func() (err error) {
		*dst, err = c.Int()
		return err
	}
}

func floatInto(c *lexer.Cursor, dst *float64) func() error {
	return func() (err error) {
		*dst, err = c.Float()
		return err
	}
}
