package template

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/dotgen/pkg/arrays"
)

func TestRender_ScalarSubstitution(t *testing.T) {
	effective := map[string]string{"user": "alice", "os": "macos"}

	result := Render("Hello {{ user }}, OS: {{os}}", effective, nil)
	assert.Equal(t, "Hello alice, OS: macos", result.Text)
	assert.Empty(t, result.Unresolved)
	assert.Empty(t, result.Warnings)
}

func TestRender_EmptyStringValue(t *testing.T) {
	result := Render("[{{signature}}]", map[string]string{"signature": ""}, nil)
	assert.Equal(t, "[]", result.Text)
	assert.Empty(t, result.Unresolved)
}

func TestRender_ConditionalWithElse(t *testing.T) {
	doc := `{{#if os == "macos"}}mac{{#else}}other{{/if}}`

	result := Render(doc, map[string]string{"os": "macos"}, nil)
	assert.Equal(t, "mac", result.Text)

	result = Render(doc, map[string]string{"os": "linux"}, nil)
	assert.Equal(t, "other", result.Text)
}

func TestRender_NestedConditionals(t *testing.T) {
	doc := `{{#if a}}A{{#if b}}B{{#else}}C{{/if}}D{{#else}}E{{/if}}`

	tests := []struct {
		name     string
		vars     map[string]string
		expected string
	}{
		{"outer and inner true", map[string]string{"a": "1", "b": "1"}, "ABD"},
		{"outer true inner false", map[string]string{"a": "1"}, "ACD"},
		{"outer false", map[string]string{"b": "1"}, "E"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Render(doc, tt.vars, nil)
			assert.Equal(t, tt.expected, result.Text)
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestRender_DeeplyNestedConditionals(t *testing.T) {
	doc := `{{#if a}}{{#if b}}{{#if c}}deep{{/if}}{{/if}}{{/if}}`
	result := Render(doc, map[string]string{"a": "1", "b": "1", "c": "1"}, nil)
	assert.Equal(t, "deep", result.Text)

	result = Render(doc, map[string]string{"a": "1", "b": "1"}, nil)
	assert.Equal(t, "", result.Text)
}

func TestRender_Unless(t *testing.T) {
	doc := `{{#unless debug}}quiet{{/unless}}`

	result := Render(doc, map[string]string{}, nil)
	assert.Equal(t, "quiet", result.Text)

	result = Render(doc, map[string]string{"debug": "1"}, nil)
	assert.Equal(t, "", result.Text)
}

func TestRender_LoopExpansion(t *testing.T) {
	registry := arrays.NewRegistry()
	registry.Define("ssh_hosts", []string{"github|github.com|git|~/.ssh/id|"})

	result := Render("{{#each ssh_hosts}}Host {{name}} -> {{hostname}}{{/each}}", nil, registry)
	assert.Equal(t, "Host github -> github.com", result.Text)
	assert.Empty(t, result.Unresolved)
}

func TestRender_LoopMultipleRecords(t *testing.T) {
	registry := arrays.NewRegistry()
	registry.Define("ssh_hosts", []string{
		"github|github.com|git",
		"work|gitlab.corp|deploy",
	})

	result := Render("{{#each ssh_hosts}}{{name}}={{user}}@{{hostname}}\n{{/each}}", nil, registry)
	assert.Equal(t, "github=git@github.com\nwork=deploy@gitlab.corp\n", result.Text)
}

func TestRender_LoopZeroRecords(t *testing.T) {
	registry := arrays.NewRegistry()
	registry.Define("empty", nil)

	result := Render("before{{#each empty}}X{{/each}}after", nil, registry)
	assert.Equal(t, "beforeafter", result.Text)
	assert.Empty(t, result.Warnings)
}

func TestRender_LoopUnknownArray(t *testing.T) {
	result := Render("before{{#each missing}}X{{/each}}after", nil, nil)
	assert.Equal(t, "beforeafter", result.Text)
}

func TestRender_LoopFieldsDoNotLeak(t *testing.T) {
	registry := arrays.NewRegistry()
	registry.Define("hosts", []string{"github|github.com"})

	// After the loop, the field name resolves from the effective map,
	// not from the last iteration's bindings.
	result := Render("{{#each hosts}}{{name}}{{/each}}:{{name}}", map[string]string{"name": "outer"}, registry)
	assert.Equal(t, "github:outer", result.Text)

	// And with no effective value either, the tag stays unresolved.
	result = Render("{{#each hosts}}{{name}}{{/each}}:{{name}}", nil, registry)
	assert.Equal(t, "github:{{name}}", result.Text)
	assert.Equal(t, []string{"name"}, result.Unresolved)
}

func TestRender_LoopFieldOverridesEffective(t *testing.T) {
	registry := arrays.NewRegistry()
	registry.Define("hosts", []string{"github|github.com"})

	result := Render("{{#each hosts}}{{name}}{{/each}}", map[string]string{"name": "outer"}, registry)
	assert.Equal(t, "github", result.Text)
}

func TestRender_ConditionalInsideLoop(t *testing.T) {
	registry := arrays.NewRegistry()
	registry.Define("hosts", []string{
		"github|github.com|git|~/.ssh/id|fast",
		"slowbox|slow.example|root||",
	})

	doc := "{{#each hosts}}{{#if extra}}{{name}}!{{#else}}{{name}}{{/if}} {{/each}}"
	result := Render(doc, nil, registry)
	assert.Equal(t, "github! slowbox ", result.Text)
}

func TestRender_NestedEachFlagged(t *testing.T) {
	registry := arrays.NewRegistry()
	registry.Define("outer", []string{"one"})
	registry.DefineSchema("outer", "v")

	result := Render("{{#each outer}}{{#each inner}}x{{/each}}{{/each}}", nil, registry)
	// The inner open tag stays literal, the first close tag terminates
	// the outer loop, and the trailing close tag is stray.
	assert.Equal(t, "{{#each inner}}x{{/each}}", result.Text)
	assert.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "nested {{#each inner}}")
}

func TestRender_UnresolvedVariable(t *testing.T) {
	result := Render("{{unknown_var}}", map[string]string{}, nil)
	assert.Equal(t, "{{unknown_var}}", result.Text)
	assert.Equal(t, []string{"unknown_var"}, result.Unresolved)
}

func TestRender_UnresolvedPreservesSpacing(t *testing.T) {
	result := Render("a {{ missing }} b {{missing}} c", nil, nil)
	assert.Equal(t, "a {{ missing }} b {{missing}} c", result.Text)
	// Deduplicated by trimmed name
	assert.Equal(t, []string{"missing"}, result.Unresolved)
}

func TestRender_UnclosedConditional(t *testing.T) {
	result := Render("{{#if x}}body", map[string]string{"x": "1"}, nil)
	assert.Equal(t, "{{#if x}}body", result.Text)
	assert.NotEmpty(t, result.Warnings)
}

func TestRender_StrayCloseTags(t *testing.T) {
	result := Render("a{{/if}}b{{#else}}c", nil, nil)
	assert.Equal(t, "a{{/if}}b{{#else}}c", result.Text)
	assert.Len(t, result.Warnings, 2)
}

func TestRender_Idempotent(t *testing.T) {
	registry := arrays.NewRegistry()
	registry.Define("hosts", []string{"github|github.com|git"})
	effective := map[string]string{"user": "alice", "os": "macos"}
	doc := "{{user}} {{#if os == \"macos\"}}m{{/if}} {{#each hosts}}{{name}}{{/each}} {{nope}}"

	first := Render(doc, effective, registry)
	second := Render(doc, effective, registry)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Unresolved, second.Unresolved)
}

func TestRender_PlainTextPassthrough(t *testing.T) {
	doc := "no directives here, just text\nwith lines and } braces {\n"
	result := Render(doc, nil, nil)
	assert.Equal(t, doc, result.Text)
	assert.Empty(t, result.Unresolved)
}

func TestRender_DepthLimit(t *testing.T) {
	var doc string
	for i := 0; i < maxNestDepth+8; i++ {
		doc += "{{#if a}}"
	}
	doc += "x"
	for i := 0; i < maxNestDepth+8; i++ {
		doc += "{{/if}}"
	}

	// Must terminate deterministically and keep the overflow literal.
	result := Render(doc, map[string]string{"a": "1"}, nil)
	assert.Contains(t, result.Text, "x")
	assert.NotEmpty(t, result.Warnings)
}
