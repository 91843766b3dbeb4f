package parser

import (
	"github.com/golangcan/godbc/internal/ast"
	"github.com/golangcan/godbc/internal/lexer"
)

// comment targets are tried in the order node, message, environment
// variable, signal, plain.
func (p *Parser) comment() (ast.Comment, error) {
	p.cur.Multispace0()
	r := p.begin("comment")
	var c ast.Comment
	if err := r.run(p.tag(lexer.KwComment), p.sp, p.commentTarget(&c), p.char(';'), p.eol); err != nil {
		return c, err
	}
	c.Span = r.span()
	return c, nil
}

func (p *Parser) commentTarget(c *ast.Comment) step {
	return func() error {
		r := p.begin("comment target")
		switch {
		case r.try(p.tag(lexer.KwNode), p.sp, p.identTo(&c.Name), p.sp, p.quotedTo(&c.Text)):
			c.Target = ast.ObjectNode
		case r.try(p.tag(lexer.KwMessage), p.sp, p.uintTo(&c.MessageID), p.sp, p.quotedTo(&c.Text)):
			c.Target = ast.ObjectMessage
		case r.try(p.tag(lexer.KwEnvVar), p.sp, p.identTo(&c.Name), p.sp, p.quotedTo(&c.Text)):
			c.Target = ast.ObjectEnvVar
		case r.try(p.tag(lexer.KwSignal), p.sp, p.uintTo(&c.MessageID), p.sp, p.identTo(&c.Name), p.sp, p.quotedTo(&c.Text)):
			c.Target = ast.ObjectSignal
		case r.try(p.quotedTo(&c.Text)):
			c.Target = ast.ObjectNone
		default:
			return r.noAlternative(`BU_, BO_, EV_, SG_ or quoted string`)
		}
		return nil
	}
}

// attributeDefinition keeps the definition body verbatim. The plain form
// is separated from the keyword by two spaces.
func (p *Parser) attributeDefinition() (ast.AttributeDefinition, error) {
	p.cur.Multispace0()
	r := p.begin("attribute definition")
	var d ast.AttributeDefinition
	if err := r.run(p.tag(lexer.KwAttributeDefinition), p.sp, p.attributeDefinitionBody(&d), p.char(';'), p.eol); err != nil {
		return d, err
	}
	d.Span = r.span()
	return d, nil
}

func (p *Parser) attributeDefinitionBody(d *ast.AttributeDefinition) step {
	return func() error {
		r := p.begin("attribute definition target")
		switch {
		case r.try(p.tag(lexer.KwNode), p.sp, p.textTo(&d.Text)):
			d.Target = ast.ObjectNode
		case r.try(p.tag(lexer.KwSignal), p.sp, p.textTo(&d.Text)):
			d.Target = ast.ObjectSignal
		case r.try(p.tag(lexer.KwEnvVar), p.sp, p.textTo(&d.Text)):
			d.Target = ast.ObjectEnvVar
		case r.try(p.tag(lexer.KwMessage), p.sp, p.textTo(&d.Text)):
			d.Target = ast.ObjectMessage
		case r.try(p.sp, p.textTo(&d.Text)):
			d.Target = ast.ObjectNone
		default:
			return r.noAlternative(`BU_, SG_, EV_, BO_ or " "`)
		}
		return nil
	}
}

func (p *Parser) attributeDefault() (ast.AttributeDefault, error) {
	p.cur.Multispace0()
	r := p.begin("attribute default")
	var d ast.AttributeDefault
	if err := r.run(
		p.tag(lexer.KwAttributeDefault), p.cur.Space1, p.quotedTo(&d.Name), p.sp,
		p.attributeValue(&d.Value), p.char(';'), p.eol,
	); err != nil {
		return d, err
	}
	d.Span = r.span()
	return d, nil
}

// attributeAssignment is a BA_ line. Object targets are tried in the order
// node, message, signal, environment variable, then the raw value form.
func (p *Parser) attributeAssignment() (ast.AttributeAssignment, error) {
	p.cur.Multispace0()
	r := p.begin("attribute value")
	var a ast.AttributeAssignment
	if err := r.run(
		p.tag(lexer.KwAttributeValue), p.sp, p.quotedTo(&a.Name), p.sp,
		p.attributeTarget(&a), p.char(';'), p.eol,
	); err != nil {
		return a, err
	}
	a.Span = r.span()
	return a, nil
}

func (p *Parser) attributeTarget(a *ast.AttributeAssignment) step {
	return func() error {
		r := p.begin("attribute target")
		var v ast.AttributeValue
		switch {
		case r.try(p.tag(lexer.KwNode), p.sp, p.identTo(&a.Object), p.sp, p.attributeValue(&v)):
			a.Target = ast.ObjectNode
		case r.try(p.tag(lexer.KwMessage), p.sp, p.uintTo(&a.MessageID), p.sp):
			// The value of a message attribute may be absent.
			a.Target = ast.ObjectMessage
			if p.attributeValue(&v)() != nil {
				return nil
			}
		case r.try(p.tag(lexer.KwSignal), p.sp, p.uintTo(&a.MessageID), p.sp, p.identTo(&a.Object), p.sp, p.attributeValue(&v)):
			a.Target = ast.ObjectSignal
		case r.try(p.tag(lexer.KwEnvVar), p.sp, p.identTo(&a.Object), p.sp, p.attributeValue(&v)):
			a.Target = ast.ObjectEnvVar
		case r.try(p.attributeValue(&v)):
			a.Target = ast.ObjectNone
		default:
			return r.noAlternative(`BU_, BO_, SG_, EV_ or attribute value`)
		}
		a.Value = &v
		return nil
	}
}

// valueDescription tries the signal form (message id and signal name)
// before the environment variable form.
func (p *Parser) valueDescription() (ast.ValueDescription, error) {
	p.cur.Multispace0()
	r := p.begin("value description")
	var vd ast.ValueDescription
	switch {
	case r.try(p.tag(lexer.KwValueDescription), p.sp, p.uintTo(&vd.MessageID), p.sp, p.identTo(&vd.Name), p.valuePairs(&vd.Pairs)):
		vd.Target = ast.ObjectSignal
	case r.try(p.tag(lexer.KwValueDescription), p.sp, p.identTo(&vd.Name), p.valuePairs(&vd.Pairs)):
		vd.Target = ast.ObjectEnvVar
		vd.MessageID = 0
	default:
		return vd, r.noAlternative("signal or environment variable value description")
	}
	if err := r.run(p.eol); err != nil {
		return vd, err
	}
	vd.Span = r.span()
	return vd, nil
}
