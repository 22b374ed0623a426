package arrays

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaFallback(t *testing.T) {
	r := NewRegistry()
	r.Define("ssh_hosts", []string{"github|github.com|git|~/.ssh/id|"})

	// No declared schema: the default applies
	assert.Equal(t, []string{"name", "hostname", "user", "identity", "extra"}, r.Schema("ssh_hosts"))

	r.DefineSchema("mounts", "source|target|options")
	assert.Equal(t, []string{"source", "target", "options"}, r.Schema("mounts"))
}

func TestBind(t *testing.T) {
	r := NewRegistry()
	r.Define("ssh_hosts", []string{"github|github.com|git|~/.ssh/id|"})

	scope := r.Bind("ssh_hosts", "github|github.com|git|~/.ssh/id|")
	assert.Equal(t, "github", scope["name"])
	assert.Equal(t, "github.com", scope["hostname"])
	assert.Equal(t, "git", scope["user"])
	assert.Equal(t, "~/.ssh/id", scope["identity"])
	assert.Equal(t, "", scope["extra"])
}

func TestBind_ShortRecord(t *testing.T) {
	r := NewRegistry()

	// Record shorter than schema: trailing fields are empty
	scope := r.Bind("anything", "github|github.com")
	assert.Equal(t, "github", scope["name"])
	assert.Equal(t, "github.com", scope["hostname"])
	assert.Equal(t, "", scope["user"])
	assert.Equal(t, "", scope["identity"])
	assert.Equal(t, "", scope["extra"])
}

func TestBind_LongRecord(t *testing.T) {
	r := NewRegistry()
	r.DefineSchema("pair", "a|b")

	// Values past the schema are dropped
	scope := r.Bind("pair", "1|2|3|4")
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, scope)
}

func TestBind_FreshScopePerCall(t *testing.T) {
	r := NewRegistry()
	r.DefineSchema("pair", "a|b")

	first := r.Bind("pair", "1|2")
	first["a"] = "mutated"

	second := r.Bind("pair", "1|2")
	assert.Equal(t, "1", second["a"])
}

func TestRecords_UnknownArray(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Records("nope"))
}

func TestNames(t *testing.T) {
	r := NewRegistry()
	r.Define("zeta", nil)
	r.Define("alpha", nil)
	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
}

func TestSchemaWhitespace(t *testing.T) {
	r := NewRegistry()
	r.DefineSchema("hosts", " name | hostname |")
	assert.Equal(t, []string{"name", "hostname"}, r.Schema("hosts"))
}
