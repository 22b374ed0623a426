// Package vars implements the layered variable model behind template
// rendering. Five layers contribute values; a deterministic overlay
// merge produces the effective map a render pass consumes.
package vars

import (
	"sort"
	"strings"

	"github.com/blackwell-systems/dotgen/pkg/logging"
)

// EnvPrefix marks process environment variables that belong to the
// environment layer. DOTGEN_TMPL_EDITOR=vim sets editor=vim.
const EnvPrefix = "DOTGEN_TMPL_"

// Layer labels, in precedence order. Used for diagnostics only; the
// merge order is fixed by Merge itself.
const (
	LayerAuto        = "auto"
	LayerDefault     = "default"
	LayerMachineType = "machine-type"
	LayerLocal       = "local-override"
	LayerEnvironment = "environment"
)

// Layers holds the five variable sources for one render pass. It is
// built fresh per invocation and never mutated after construction;
// there is no ambient global layer state.
type Layers struct {
	// Auto holds machine-detected values (lowest precedence).
	Auto map[string]string

	// Default holds values from the shared definitions file.
	Default map[string]string

	// MachineType maps each machine type to its override values. Only
	// the layer matching SelectedType contributes to the merge.
	MachineType map[string]map[string]string

	// SelectedType is the machine type chosen by the selector. An
	// unknown or unmatched type contributes nothing.
	SelectedType string

	// Local holds values from the per-machine override file.
	Local map[string]string

	// Environment holds values scanned from the process environment
	// (highest precedence).
	Environment map[string]string
}

// Merge collapses the layers into the effective variable map. Each
// layer overlays the accumulator name by name, so the highest layer
// that defines a name wins. An empty-string value still overrides;
// only absence contributes nothing.
func (l Layers) Merge() map[string]string {
	effective := make(map[string]string)
	for _, layer := range l.ordered() {
		for name, value := range layer.values {
			effective[name] = value
		}
	}
	return effective
}

// Sources reports which layer supplied each effective value, for
// debugging precedence surprises.
func (l Layers) Sources() map[string]string {
	sources := make(map[string]string)
	for _, layer := range l.ordered() {
		for name := range layer.values {
			sources[name] = layer.label
		}
	}
	return sources
}

// Names returns all effective variable names, sorted.
func (l Layers) Names() []string {
	effective := l.Merge()
	names := make([]string, 0, len(effective))
	for name := range effective {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type layer struct {
	label  string
	values map[string]string
}

func (l Layers) ordered() []layer {
	return []layer{
		{LayerAuto, l.Auto},
		{LayerDefault, l.Default},
		{LayerMachineType, l.MachineType[l.SelectedType]},
		{LayerLocal, l.Local},
		{LayerEnvironment, l.Environment},
	}
}

// ScanEnvironment extracts the environment layer from environ, which
// has the "KEY=value" form of os.Environ. Only entries under EnvPrefix
// participate; the variable name is the prefix stripped and lowercased.
func ScanEnvironment(environ []string) map[string]string {
	log := logging.GetLogger("vars")

	values := make(map[string]string)
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if name == "" {
			continue
		}
		values[name] = value
	}

	if len(values) > 0 {
		log.Debug().Int("count", len(values)).Msg("Environment layer scanned")
	}
	return values
}
