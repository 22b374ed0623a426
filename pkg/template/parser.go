package template

import "fmt"

// maxNestDepth bounds block nesting. A document deeper than this is
// malformed input; everything past the limit degrades to literal text
// so parsing terminates deterministically.
const maxNestDepth = 64

// parser is a recursive-descent parser over the token stream. Any
// structural problem (stray close tag, unclosed block, nested loop,
// excessive depth) degrades the offending tag to literal text and
// records a warning; parsing itself never fails.
type parser struct {
	toks     []token
	pos      int
	depth    int
	warnings []string
}

// blockCtx records which block kinds enclose the current parse so
// close tags can unwind to the block they belong to.
type blockCtx struct {
	inIf     bool
	inUnless bool
	inEach   bool

	// acceptElse is set only while parsing the true branch of the
	// innermost if; an else anywhere else is stray.
	acceptElse bool
}

// tokEOF is a sentinel terminator for parseNodes.
const tokEOF tokenKind = -1

// Parse builds the node tree for a document. The returned warnings
// describe structural degradations; they are advisory, matching the
// renderer's never-fail contract.
func Parse(document string) ([]Node, []string) {
	p := &parser{toks: tokenize(document)}
	nodes, _ := p.parseNodes(blockCtx{})
	return nodes, p.warnings
}

// parseNodes consumes tokens until end of input or a close token that
// belongs to an enclosing block. The terminating token is not
// consumed; its kind is returned so the caller can decide whether it
// closes the caller's own block.
func (p *parser) parseNodes(ctx blockCtx) ([]Node, tokenKind) {
	var nodes []Node

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		switch t.kind {
		case tokText:
			nodes = append(nodes, &Text{Value: t.raw})
			p.pos++
		case tokScalar:
			nodes = append(nodes, &Scalar{Name: t.arg, Raw: t.raw})
			p.pos++
		case tokIf:
			nodes = append(nodes, p.parseConditional(ctx, false))
		case tokUnless:
			nodes = append(nodes, p.parseConditional(ctx, true))
		case tokEach:
			if ctx.inEach {
				p.warnf("nested {{#each %s}} is not supported, tag left as literal text", t.arg)
				nodes = append(nodes, &Text{Value: t.raw})
				p.pos++
				continue
			}
			nodes = append(nodes, p.parseLoop(ctx))
		case tokElse:
			if ctx.acceptElse {
				return nodes, tokElse
			}
			p.warnf("stray {{#else}} outside a conditional, tag left as literal text")
			nodes = append(nodes, &Text{Value: t.raw})
			p.pos++
		case tokEndIf:
			if ctx.inIf {
				return nodes, tokEndIf
			}
			p.warnf("stray {{/if}} without an open conditional, tag left as literal text")
			nodes = append(nodes, &Text{Value: t.raw})
			p.pos++
		case tokEndUnless:
			if ctx.inUnless {
				return nodes, tokEndUnless
			}
			p.warnf("stray {{/unless}} without an open block, tag left as literal text")
			nodes = append(nodes, &Text{Value: t.raw})
			p.pos++
		case tokEndEach:
			if ctx.inEach {
				return nodes, tokEndEach
			}
			p.warnf("stray {{/each}} without an open loop, tag left as literal text")
			nodes = append(nodes, &Text{Value: t.raw})
			p.pos++
		}
	}
	return nodes, tokEOF
}

// parseConditional parses an if block (negate false) or unless block
// (negate true). An unclosed block degrades its open tag to literal
// text and rewinds so the body is reparsed in the enclosing context.
func (p *parser) parseConditional(ctx blockCtx, negate bool) Node {
	t := p.toks[p.pos]
	if p.depth >= maxNestDepth {
		p.warnf("nesting depth limit reached, tag left as literal text")
		p.pos++
		return &Text{Value: t.raw}
	}

	start := p.pos
	p.pos++
	p.depth++
	defer func() { p.depth-- }()

	want := tokEndIf
	inner := blockCtx{inIf: true, inUnless: ctx.inUnless, inEach: ctx.inEach, acceptElse: !negate}
	if negate {
		want = tokEndUnless
		inner = blockCtx{inIf: ctx.inIf, inUnless: true, inEach: ctx.inEach}
	}

	trueBranch, stop := p.parseNodes(inner)

	var falseBranch []Node
	if stop == tokElse {
		p.pos++ // consume the else marker
		inner.acceptElse = false
		falseBranch, stop = p.parseNodes(inner)
	}

	if stop != want {
		p.warnf("unclosed %s block, open tag left as literal text", blockName(negate))
		p.pos = start + 1
		return &Text{Value: t.raw}
	}
	p.pos++ // consume the close tag

	return &Conditional{
		Cond:   parseCondition(t.arg),
		Negate: negate,
		True:   trueBranch,
		False:  falseBranch,
	}
}

// parseLoop parses an each block. Loops do not nest; parseNodes flags
// an inner each before this is reached again.
func (p *parser) parseLoop(ctx blockCtx) Node {
	t := p.toks[p.pos]
	if p.depth >= maxNestDepth {
		p.warnf("nesting depth limit reached, tag left as literal text")
		p.pos++
		return &Text{Value: t.raw}
	}

	start := p.pos
	p.pos++
	p.depth++
	defer func() { p.depth-- }()

	body, stop := p.parseNodes(blockCtx{inIf: ctx.inIf, inUnless: ctx.inUnless, inEach: true})
	if stop != tokEndEach {
		p.warnf("unclosed {{#each %s}} block, open tag left as literal text", t.arg)
		p.pos = start + 1
		return &Text{Value: t.raw}
	}
	p.pos++ // consume the close tag

	return &Loop{Array: t.arg, Body: body}
}

func (p *parser) warnf(format string, args ...interface{}) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func blockName(negate bool) string {
	if negate {
		return "{{#unless}}"
	}
	return "{{#if}}"
}
