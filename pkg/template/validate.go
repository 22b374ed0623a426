package template

import (
	"fmt"
	"strings"
)

// Issue is one structural finding from Validate.
type Issue struct {
	Code    string
	Message string
}

func (i Issue) String() string { return i.Message }

// Issue codes, stable for testing.
const (
	IssueUnbalancedIf     = "unbalanced-if"
	IssueUnbalancedUnless = "unbalanced-unless"
	IssueUnbalancedEach   = "unbalanced-each"
	IssueUnterminatedTag  = "unterminated-tag"
)

// Validate performs a static structural check of a document,
// independent of any variable values. It checks count parity of block
// opens against closes and that every open delimiter terminates.
//
// Parity is all it checks: a document whose counts match can still
// mis-nest at render time. That gap is deliberate; nesting problems
// degrade to literal text during rendering and are reported there.
func Validate(document string) []Issue {
	var issues []Issue

	// Tag recognition goes through the lexer so the validator accepts
	// exactly the whitespace forms the renderer does.
	counts := make(map[tokenKind]int)
	for _, tok := range tokenize(document) {
		counts[tok.kind]++
	}

	pairs := []struct {
		code       string
		open, end  tokenKind
		label      string
		closeLabel string
	}{
		{IssueUnbalancedIf, tokIf, tokEndIf, "{{#if}}", "{{/if}}"},
		{IssueUnbalancedUnless, tokUnless, tokEndUnless, "{{#unless}}", "{{/unless}}"},
		{IssueUnbalancedEach, tokEach, tokEndEach, "{{#each}}", "{{/each}}"},
	}
	for _, pair := range pairs {
		opens := counts[pair.open]
		closes := counts[pair.end]
		if opens != closes {
			issues = append(issues, Issue{
				Code:    pair.code,
				Message: fmt.Sprintf("%d %s opens but %d %s closes", opens, pair.label, closes, pair.closeLabel),
			})
		}
	}

	// Every {{ must have a }} before end of document.
	rest := document
	for {
		open := strings.Index(rest, openDelim)
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], closeDelim)
		if end < 0 {
			issues = append(issues, Issue{
				Code:    IssueUnterminatedTag,
				Message: "'{{' without a matching '}}' before end of document",
			})
			break
		}
		rest = rest[open+end+len(closeDelim):]
	}

	return issues
}
