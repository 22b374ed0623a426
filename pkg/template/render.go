// Package template implements the directive language used by dotgen
// templates: {{ name }} scalars, {{#if}}/{{#unless}} conditionals with
// arbitrary nesting, and single-level {{#each}} loops over named
// arrays. Documents are parsed into a node tree and then evaluated;
// the evaluator preserves the language's contract that loops expand
// before conditionals resolve and conditionals resolve before scalar
// substitution.
package template

import (
	"strings"

	"github.com/blackwell-systems/dotgen/pkg/arrays"
	"github.com/blackwell-systems/dotgen/pkg/logging"
)

// Result is the outcome of rendering one document. Unresolved and
// Warnings are advisory; rendering itself never fails.
type Result struct {
	// Text is the rendered document. Unresolved references and
	// degraded directives appear verbatim.
	Text string

	// Unresolved lists the contents of {{...}} spans still present
	// after substitution, first occurrence order, deduplicated.
	Unresolved []string

	// Warnings describe structural degradations found during parsing.
	Warnings []string
}

// Render evaluates a document against the effective variable map and
// array registry. A nil registry behaves as an empty one. Rendering
// the same inputs twice produces byte-identical output.
func Render(document string, effective map[string]string, registry *arrays.Registry) Result {
	log := logging.GetLogger("template.render")

	if registry == nil {
		registry = arrays.NewRegistry()
	}

	nodes, warnings := Parse(document)

	state := &renderState{effective: effective, registry: registry}
	var sb strings.Builder
	sb.Grow(len(document))
	state.eval(nodes, &sb)

	text := sb.String()
	unresolved := scanUnresolved(text)
	if len(unresolved) > 0 {
		log.Warn().Strs("names", unresolved).Msg("Unresolved references after substitution")
	}
	for _, w := range warnings {
		log.Warn().Msg(w)
	}

	return Result{Text: text, Unresolved: unresolved, Warnings: warnings}
}

type renderState struct {
	effective map[string]string
	registry  *arrays.Registry

	// scope holds the current loop iteration's field bindings. It is
	// replaced wholesale per iteration and cleared after the loop, so
	// bindings never leak across iterations or documents.
	scope map[string]string
}

// lookup resolves a name, loop fields first, then the effective map.
func (s *renderState) lookup(name string) (string, bool) {
	if s.scope != nil {
		if value, ok := s.scope[name]; ok {
			return value, true
		}
	}
	value, ok := s.effective[name]
	return value, ok
}

func (s *renderState) eval(nodes []Node, sb *strings.Builder) {
	for _, n := range nodes {
		switch node := n.(type) {
		case *Text:
			sb.WriteString(node.Value)
		case *Scalar:
			if value, ok := s.lookup(node.Name); ok {
				sb.WriteString(value)
			} else {
				sb.WriteString(node.Raw)
			}
		case *Conditional:
			truth := node.Cond.Evaluate(s.lookup)
			if node.Negate {
				truth = !truth
			}
			if truth {
				s.eval(node.True, sb)
			} else {
				s.eval(node.False, sb)
			}
		case *Loop:
			s.evalLoop(node, sb)
		}
	}
}

func (s *renderState) evalLoop(loop *Loop, sb *strings.Builder) {
	outer := s.scope
	defer func() { s.scope = outer }()

	// Unknown arrays yield nil records: zero iterations, no error.
	for _, record := range s.registry.Records(loop.Array) {
		s.scope = s.registry.Bind(loop.Array, record)
		s.eval(loop.Body, sb)
	}
}

// scanUnresolved collects the trimmed contents of any {{...}} spans
// left in rendered output.
func scanUnresolved(text string) []string {
	var names []string
	seen := make(map[string]bool)

	rest := text
	for {
		open := strings.Index(rest, openDelim)
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], closeDelim)
		if end < 0 {
			break
		}
		name := strings.TrimSpace(rest[open+len(openDelim) : open+end])
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		rest = rest[open+end+len(closeDelim):]
	}
	return names
}
