package parser

import (
	"strconv"

	"github.com/golangcan/godbc/internal/ast"
	"github.com/golangcan/godbc/internal/lexer"
)

// digit consumes one of the bytes '0' through '0'+n-1.
func (r rule) digit(n int, expected string) (int, error) {
	for d := 0; d < n; d++ {
		if r.p.cur.Char(byte('0'+d)) == nil {
			return d, nil
		}
	}
	return 0, r.noAlternative(expected)
}

// byteOrder: 0 is big endian (Motorola), 1 little endian (Intel).
func (p *Parser) byteOrder(dst *ast.ByteOrder) step {
	return func() error {
		d, err := p.begin("byte order").digit(2, `"0" or "1"`)
		if err != nil {
			return err
		}
		if d == 0 {
			*dst = ast.BigEndian
		} else {
			*dst = ast.LittleEndian
		}
		return nil
	}
}

func (p *Parser) valueType(dst *ast.ValueType) step {
	return func() error {
		r := p.begin("value type")
		switch {
		case p.cur.Char('-') == nil:
			*dst = ast.Signed
		case p.cur.Char('+') == nil:
			*dst = ast.Unsigned
		default:
			return r.noAlternative(`"-" or "+"`)
		}
		return nil
	}
}

// multiplexIndicator recognizes the text between a signal name and its
// colon, including the delimiting spaces.
func (p *Parser) multiplexIndicator(dst *ast.Multiplex) step {
	return func() error {
		r := p.begin("multiplex indicator")
		var selector uint64
		switch {
		case r.try(p.sp, p.char('m'), p.uintTo(&selector), p.sp):
			*dst = ast.Multiplex{Kind: ast.MultiplexMultiplexed, Selector: selector}
		case r.try(p.sp, p.char('M'), p.sp):
			*dst = ast.Multiplex{Kind: ast.MultiplexMultiplexor}
		case r.try(p.sp):
			*dst = ast.Multiplex{Kind: ast.MultiplexPlain}
		default:
			return r.noAlternative(`" m<selector> ", " M " or " "`)
		}
		return nil
	}
}

func (p *Parser) envType(dst *ast.EnvType) step {
	return func() error {
		d, err := p.begin("environment variable type").digit(3, `"0", "1" or "2"`)
		if err != nil {
			return err
		}
		*dst = ast.EnvType(d)
		return nil
	}
}

func (p *Parser) accessType(dst *int) step {
	return func() error {
		r := p.begin("access type")
		if err := r.run(p.tag(lexer.KwAccessType)); err != nil {
			return err
		}
		d, err := p.begin("access type digit").digit(4, `"0" to "3"`)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	}
}

func (p *Parser) extValueType(dst *ast.ExtValueType) step {
	return func() error {
		d, err := p.begin("extended value type").digit(3, `"0", "1" or "2"`)
		if err != nil {
			return err
		}
		*dst = ast.ExtValueType(d)
		return nil
	}
}

// transmitter is a node name, or Vector__XXX for a message without sender.
func (p *Parser) transmitter(dst *ast.Transmitter) step {
	return func() error {
		r := p.begin("transmitter")
		var id ast.Ident
		if err := r.run(p.identTo(&id)); err != nil {
			return err
		}
		if id.Name == lexer.KwVectorXXX {
			*dst = ast.Transmitter{VectorXXX: true}
		} else {
			*dst = ast.Transmitter{Node: id}
		}
		return nil
	}
}

func (p *Parser) accessNode() (ast.AccessNode, error) {
	r := p.begin("access node")
	var id ast.Ident
	if err := r.run(p.identTo(&id)); err != nil {
		return ast.AccessNode{}, err
	}
	if id.Name == lexer.KwAccessVectorXXX {
		return ast.AccessNode{VectorXXX: true}, nil
	}
	return ast.AccessNode{Node: id}, nil
}

// accessNodes is a non-empty comma separated list.
func (p *Parser) accessNodes(dst *[]ast.AccessNode) step {
	return func() error {
		first, err := p.accessNode()
		if err != nil {
			return err
		}
		nodes := []ast.AccessNode{first}
		nodes = append(nodes, many(p, "access node", func() (ast.AccessNode, error) {
			if err := p.cur.Char(','); err != nil {
				return ast.AccessNode{}, err
			}
			return p.accessNode()
		})...)
		*dst = nodes
		return nil
	}
}

// identList is a non-empty comma separated list of identifiers.
func (p *Parser) identList(dst *[]ast.Ident) step {
	return func() error {
		var first ast.Ident
		if err := p.identTo(&first)(); err != nil {
			return err
		}
		ids := []ast.Ident{first}
		ids = append(ids, many(p, "identifier", func() (ast.Ident, error) {
			var id ast.Ident
			if err := p.cur.Char(','); err != nil {
				return id, err
			}
			err := p.identTo(&id)()
			return id, err
		})...)
		*dst = ids
		return nil
	}
}

// valuePairs reads " <value> \"<label>\"" pairs up to the closing " ;".
func (p *Parser) valuePairs(dst *[]ast.ValuePair) step {
	return func() error {
		r := p.begin("value descriptions")
		var pairs []ast.ValuePair
		for {
			if r.try(p.sp, p.char(';')) {
				*dst = pairs
				return nil
			}
			var pair ast.ValuePair
			if err := r.run(p.sp, p.floatTo(&pair.Value), p.sp, p.quotedTo(&pair.Label)); err != nil {
				return err
			}
			pairs = append(pairs, pair)
		}
	}
}

// attributeValue is a number or a quoted string. Numbers are floats
// unless integer attribute values are enabled and the literal is integral.
func (p *Parser) attributeValue(dst *ast.AttributeValue) step {
	return func() error {
		r := p.begin("attribute value")
		var s ast.QuotedString
		if r.try(p.quotedTo(&s)) {
			*dst = ast.AttributeValue{Kind: ast.ValueString, Str: s.Value, Span: s.Span}
			return nil
		}
		n, err := p.cur.Number()
		if err != nil {
			return r.noAlternative("number or quoted string")
		}
		v := ast.AttributeValue{Span: r.span()}
		if p.opts.IntegerAttributeValues && n.Integral {
			if u, err := strconv.ParseUint(n.Text, 10, 64); err == nil {
				v.Kind, v.Uint = ast.ValueUint, u
				*dst = v
				return nil
			}
			if i, err := strconv.ParseInt(n.Text, 10, 64); err == nil {
				v.Kind, v.Int = ast.ValueInt, i
				*dst = v
				return nil
			}
		}
		f, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			p.cur.Reset(r.head)
			return r.expect("number in range")
		}
		v.Kind, v.Float = ast.ValueFloat, f
		*dst = v
		return nil
	}
}
