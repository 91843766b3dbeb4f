package parser

import (
	"github.com/golangcan/godbc/internal/ast"
	"github.com/golangcan/godbc/internal/lexer"
)

// Every line-level production skips leading blank space, including line
// endings, before its keyword.

func (p *Parser) version() (ast.QuotedString, error) {
	p.cur.Multispace0()
	r := p.begin("version")
	var v ast.QuotedString
	err := r.run(p.tag(lexer.KwVersion), p.sp, p.quotedTo(&v), p.eol)
	return v, err
}

func (p *Parser) newSymbols() ([]ast.Ident, error) {
	p.cur.Multispace0()
	r := p.begin("new symbols")
	spaces := func() error { p.cur.Spaces0(); return nil }
	if err := r.run(p.tag(lexer.KwNewSymbols), spaces, p.eol); err != nil {
		return nil, err
	}
	return many(p, "symbol", p.symbol), nil
}

// symbol is one indented line of the NS_ block.
func (p *Parser) symbol() (ast.Ident, error) {
	r := p.begin("symbol")
	var sym ast.Ident
	err := r.run(p.cur.Space1, p.identTo(&sym), p.eol)
	return sym, err
}

func (p *Parser) bitTiming() (ast.BitTiming, error) {
	p.cur.Multispace0()
	r := p.begin("bit timing")
	var bt ast.BitTiming
	if err := r.run(p.tag(lexer.KwBitTiming)); err != nil {
		return bt, err
	}
	var first uint64
	if r.try(p.sp, p.uintTo(&first)) {
		bt.Baudrates = append([]uint64{first}, many(p, "baudrate", func() (uint64, error) {
			var v uint64
			err := r.run(p.char(','), p.uintTo(&v))
			return v, err
		})...)
	}
	bt.Span = r.span()
	return bt, nil
}

// nodeList is "BU_:" followed by space separated node names. An empty list
// is allowed.
func (p *Parser) nodeList() (ast.NodeList, error) {
	p.cur.Multispace0()
	r := p.begin("nodes")
	var nl ast.NodeList
	if err := r.run(p.tag(lexer.KwNodes)); err != nil {
		return nl, err
	}
	nl.Names = many(p, "node", func() (ast.Ident, error) {
		var id ast.Ident
		err := r.run(p.sp, p.identTo(&id))
		return id, err
	})
	p.cur.Spaces0()
	if err := r.run(p.eol); err != nil {
		return nl, err
	}
	nl.Span = r.span()
	return nl, nil
}

func (p *Parser) valueTable() (ast.ValueTable, error) {
	p.cur.Multispace0()
	r := p.begin("value table")
	var vt ast.ValueTable
	if err := r.run(
		p.tag(lexer.KwValueTable), p.sp, p.identTo(&vt.Name),
		p.valuePairs(&vt.Pairs), p.eol,
	); err != nil {
		return vt, err
	}
	vt.Span = r.span()
	return vt, nil
}

// message is a BO_ header followed by its signals. The signal lines are
// consumed greedily; the first line that is not a signal ends the message.
func (p *Parser) message() (ast.Message, error) {
	p.cur.Multispace0()
	r := p.begin("message")
	var m ast.Message
	if err := r.run(
		p.tag(lexer.KwMessage), p.sp, p.uintTo(&m.ID), p.sp, p.identTo(&m.Name),
		p.char(':'), p.sp, p.uintTo(&m.Size), p.sp, p.transmitter(&m.Transmitter),
	); err != nil {
		return m, err
	}
	m.Signals = many(p, "signal", p.signal)
	m.Span = r.span()
	return m, nil
}

func (p *Parser) signal() (ast.Signal, error) {
	p.cur.Multispace0()
	r := p.begin("signal")
	var s ast.Signal
	if err := r.run(
		p.tag(lexer.KwSignal), p.sp, p.identTo(&s.Name),
		p.multiplexIndicator(&s.Multiplex), p.char(':'), p.sp,
		p.uintTo(&s.StartBit), p.char('|'), p.uintTo(&s.Size), p.char('@'),
		p.byteOrder(&s.ByteOrder), p.valueType(&s.ValueType), p.sp,
		p.char('('), p.floatTo(&s.Factor), p.char(','), p.floatTo(&s.Offset), p.char(')'), p.sp,
		p.char('['), p.floatTo(&s.Min), p.char('|'), p.floatTo(&s.Max), p.char(']'), p.sp,
		p.quotedTo(&s.Unit), p.sp, p.identList(&s.Receivers), p.eol,
	); err != nil {
		return s, err
	}
	s.Span = r.span()
	return s, nil
}

func (p *Parser) messageTransmitter() (ast.MessageTransmitter, error) {
	p.cur.Multispace0()
	r := p.begin("message transmitter")
	var mt ast.MessageTransmitter
	if err := r.run(
		p.tag(lexer.KwMessageTransmitter), p.sp, p.uintTo(&mt.MessageID), p.sp,
		p.char(':'), p.sp, p.transmitter(&mt.Transmitter), p.char(';'), p.eol,
	); err != nil {
		return mt, err
	}
	mt.Span = r.span()
	return mt, nil
}

func (p *Parser) envVar() (ast.EnvVar, error) {
	p.cur.Multispace0()
	r := p.begin("environment variable")
	var ev ast.EnvVar
	if err := r.run(
		p.tag(lexer.KwEnvVar), p.sp, p.identTo(&ev.Name), p.char(':'), p.sp,
		p.envType(&ev.Type), p.sp,
		p.char('['), p.intTo(&ev.Min), p.char('|'), p.intTo(&ev.Max), p.char(']'), p.sp,
		p.quotedTo(&ev.Unit), p.sp, p.floatTo(&ev.Initial), p.sp, p.intTo(&ev.ID), p.sp,
		p.accessType(&ev.AccessType), p.sp, p.accessNodes(&ev.AccessNodes),
		p.char(';'), p.eol,
	); err != nil {
		return ev, err
	}
	ev.Span = r.span()
	return ev, nil
}

func (p *Parser) envVarData() (ast.EnvVarData, error) {
	p.cur.Multispace0()
	r := p.begin("environment variable data")
	var d ast.EnvVarData
	if err := r.run(
		p.tag(lexer.KwEnvVarData), p.sp, p.identTo(&d.Name), p.char(':'), p.sp,
		p.uintTo(&d.Size), p.char(';'), p.eol,
	); err != nil {
		return d, err
	}
	d.Span = r.span()
	return d, nil
}

func (p *Parser) signalType() (ast.SignalType, error) {
	p.cur.Multispace0()
	r := p.begin("signal type")
	var st ast.SignalType
	if err := r.run(
		p.tag(lexer.KwSignalType), p.sp, p.identTo(&st.Name), p.char(':'), p.sp,
		p.uintTo(&st.Size), p.char('@'), p.byteOrder(&st.ByteOrder), p.valueType(&st.ValueType), p.sp,
		p.char('('), p.floatTo(&st.Factor), p.char(','), p.floatTo(&st.Offset), p.char(')'), p.sp,
		p.char('['), p.floatTo(&st.Min), p.char('|'), p.floatTo(&st.Max), p.char(']'), p.sp,
		p.quotedTo(&st.Unit), p.sp, p.floatTo(&st.Default), p.sp, p.identTo(&st.ValueTable),
		p.char(';'), p.eol,
	); err != nil {
		return st, err
	}
	st.Span = r.span()
	return st, nil
}

func (p *Parser) signalTypeRef() (ast.SignalTypeRef, error) {
	p.cur.Multispace0()
	r := p.begin("signal type reference")
	var ref ast.SignalTypeRef
	if err := r.run(
		p.tag(lexer.KwSignalType), p.sp, p.uintTo(&ref.MessageID), p.sp,
		p.identTo(&ref.SignalName), p.sp, p.char(':'), p.sp, p.identTo(&ref.TypeName),
		p.char(';'), p.eol,
	); err != nil {
		return ref, err
	}
	ref.Span = r.span()
	return ref, nil
}

// signalGroups lists member signals separated by spaces or commas.
func (p *Parser) signalGroups() (ast.SignalGroups, error) {
	p.cur.Multispace0()
	r := p.begin("signal group")
	var g ast.SignalGroups
	if err := r.run(
		p.tag(lexer.KwSignalGroup), p.sp, p.uintTo(&g.MessageID), p.sp,
		p.identTo(&g.Name), p.sp, p.uintTo(&g.Repetitions), p.sp, p.char(':'),
	); err != nil {
		return g, err
	}
	g.Signals = many(p, "signal group member", func() (ast.Ident, error) {
		var id ast.Ident
		if p.cur.Char(' ') != nil && p.cur.Char(',') != nil {
			return id, r.expect(`" " or ","`)
		}
		err := r.run(p.identTo(&id))
		return id, err
	})
	if err := r.run(p.char(';'), p.eol); err != nil {
		return g, err
	}
	g.Span = r.span()
	return g, nil
}

// signalExtValueType accepts the colon before the type as optional.
func (p *Parser) signalExtValueType() (ast.SignalExtValueType, error) {
	p.cur.Multispace0()
	r := p.begin("signal value type")
	var vt ast.SignalExtValueType
	if err := r.run(
		p.tag(lexer.KwSignalValueType), p.sp, p.uintTo(&vt.MessageID), p.sp,
		p.identTo(&vt.SignalName), p.sp, p.opt(p.char(':'), p.sp),
		p.extValueType(&vt.Type), p.char(';'), p.eol,
	); err != nil {
		return vt, err
	}
	vt.Span = r.span()
	return vt, nil
}
