// Package lumen is the front end of a DSL for timed, parametric stage
// lighting sequences.
//
// Sources come in three flavours: cue definitions, settings (fixtures,
// patches and groups) and show scripts. Package grammar implements a
// tokenizer and a parser for each of them; this package detects which kind
// of document a source is and parses it in one call.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package lumen

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/npillmayer/lumen/grammar"
)

// Tracefile is the file we write our event log to, if not nil.
var Tracefile io.WriteCloser

// SignalContext is a global context for terminating the application by an interrupt
// signal.
var SignalContext context.Context = context.Background()

// Exit exits the application. It gracefully shuts down all resources.
func Exit(errcode int) {
	if Tracefile != nil {
		Tracefile.Close()
	}
	os.Exit(errcode)
}

// Kind is the kind of a DSL document.
type Kind int

// Kinds of documents
const (
	Unknown Kind = iota
	CueDocument
	SettingDocument
	ShowDocument
)

func (k Kind) String() string {
	switch k {
	case CueDocument:
		return "cue"
	case SettingDocument:
		return "setting"
	case ShowDocument:
		return "show"
	}
	return "unknown"
}

// ParseKind reads "cue", "setting" or "show".
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{CueDocument, SettingDocument, ShowDocument} {
		if s == k.String() {
			return k, true
		}
	}
	return Unknown, false
}

// ErrUnknownDocument is returned if the kind of a document cannot be detected.
var ErrUnknownDocument = errors.New("cannot detect kind of document")

// Detect decides the kind of document from its first significant token.
func Detect(tokens []grammar.Token) Kind {
	for _, tok := range tokens {
		switch tok.Kind {
		case grammar.COMMENT, grammar.NEWLINE:
			continue
		case grammar.CUE:
			return CueDocument
		case grammar.LIBS, grammar.FIXTURE, grammar.PATCH, grammar.GROUP:
			return SettingDocument
		case grammar.SETTING, grammar.PLAYBACK, grammar.SHOW:
			return ShowDocument
		}
		return Unknown
	}
	return Unknown
}

// Document is a parsed source. Exactly one of Cue, Setting and Script is
// set, according to Kind.
type Document struct {
	Kind    Kind
	Tokens  []grammar.Token
	Cue     *grammar.Cue
	Setting *grammar.Setting
	Script  *grammar.Script
}

// Parse tokenizes src, detects its kind and parses it.
func Parse(src string, opts ...grammar.Option) (*Document, error) {
	return ParseAs(Unknown, src, opts...)
}

// ParseAs parses src as a document of the given kind. If kind is Unknown,
// it is detected from the source.
func ParseAs(kind Kind, src string, opts ...grammar.Option) (*Document, error) {
	tokens, err := grammar.Tokenize(src, opts...)
	if err != nil {
		return nil, err
	}
	if kind == Unknown {
		if kind = Detect(tokens); kind == Unknown {
			return nil, ErrUnknownDocument
		}
	}
	doc := &Document{Kind: kind, Tokens: tokens}
	switch kind {
	case CueDocument:
		doc.Cue, err = grammar.ParseCueTokens(tokens, opts...)
	case SettingDocument:
		doc.Setting, err = grammar.NewSettingParser(tokens, opts...).Parse()
	case ShowDocument:
		doc.Script, err = grammar.NewShowParser(tokens, opts...).Parse()
	default:
		return nil, ErrUnknownDocument
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}
