package template

import "strings"

// Tag delimiters. The language has exactly one delimiter pair; there
// is no escaping syntax for emitting a literal "{{".
const (
	openDelim  = "{{"
	closeDelim = "}}"
)

type tokenKind int

const (
	tokText tokenKind = iota
	tokScalar
	tokIf
	tokElse
	tokEndIf
	tokUnless
	tokEndUnless
	tokEach
	tokEndEach
)

// token is one lexed unit. raw holds the exact source text so any
// token can be degraded back to a literal.
type token struct {
	kind tokenKind
	raw  string
	arg  string
}

// tokenize splits a document into text runs and directive tags. An
// open delimiter with no close before end of document is literal text.
func tokenize(document string) []token {
	var toks []token
	rest := document

	for {
		open := strings.Index(rest, openDelim)
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], closeDelim)
		if end < 0 {
			// Unterminated tag: the text before it is its own run and
			// the "{{..." tail falls through as the final literal.
			if open > 0 {
				toks = append(toks, token{kind: tokText, raw: rest[:open]})
				rest = rest[open:]
			}
			break
		}
		if open > 0 {
			toks = append(toks, token{kind: tokText, raw: rest[:open]})
		}
		raw := rest[open : open+end+len(closeDelim)]
		inner := strings.TrimSpace(rest[open+len(openDelim) : open+end])
		toks = append(toks, classify(raw, inner))
		rest = rest[open+end+len(closeDelim):]
	}
	if rest != "" {
		toks = append(toks, token{kind: tokText, raw: rest})
	}
	return toks
}

func classify(raw, inner string) token {
	switch {
	case strings.HasPrefix(inner, "#if "):
		return token{kind: tokIf, raw: raw, arg: strings.TrimSpace(inner[len("#if "):])}
	case inner == "#else":
		return token{kind: tokElse, raw: raw}
	case inner == "/if":
		return token{kind: tokEndIf, raw: raw}
	case strings.HasPrefix(inner, "#unless "):
		return token{kind: tokUnless, raw: raw, arg: strings.TrimSpace(inner[len("#unless "):])}
	case inner == "/unless":
		return token{kind: tokEndUnless, raw: raw}
	case strings.HasPrefix(inner, "#each "):
		return token{kind: tokEach, raw: raw, arg: strings.TrimSpace(inner[len("#each "):])}
	case inner == "/each":
		return token{kind: tokEndEach, raw: raw}
	default:
		return token{kind: tokScalar, raw: raw, arg: inner}
	}
}
