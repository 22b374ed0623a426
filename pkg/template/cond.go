package template

import "strings"

// Condition is the parsed form of a conditional expression. Op is
// "==", "!=", or empty for a bare truthiness check.
type Condition struct {
	Name    string
	Op      string
	Literal string
}

// parseCondition recognizes the three supported forms: equality,
// inequality, bare name. The operator is the first == or != outside
// quotes, so literals like "x == y" stay intact.
func parseCondition(expr string) Condition {
	var quote byte
	for i := 0; i+1 < len(expr); i++ {
		c := expr[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			quote = c
			continue
		}
		if (c == '=' || c == '!') && expr[i+1] == '=' {
			return Condition{
				Name:    strings.TrimSpace(expr[:i]),
				Op:      string(c) + "=",
				Literal: unquote(strings.TrimSpace(expr[i+2:])),
			}
		}
	}
	return Condition{Name: strings.TrimSpace(expr)}
}

// Evaluate resolves the condition against a variable lookup. An
// undefined name compares as empty string; a bare name is truthy
// unless undefined, empty, "false", or "0".
func (c Condition) Evaluate(lookup func(string) (string, bool)) bool {
	value, _ := lookup(c.Name)
	switch c.Op {
	case "==":
		return value == c.Literal
	case "!=":
		return value != c.Literal
	default:
		return value != "" && value != "false" && value != "0"
	}
}

// unquote strips one level of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
