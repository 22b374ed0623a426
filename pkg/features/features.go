// Package features exposes the feature-gate predicate. The rendering
// engine itself has no flag awareness; callers consult a gate before
// invoking it.
package features

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/blackwell-systems/dotgen/pkg/logging"
)

// Gates answers feature-flag queries for one invocation.
type Gates struct {
	k *koanf.Koanf
}

// New builds a gate set from the [flags] table of the loaded config.
func New(flags map[string]bool) *Gates {
	k := koanf.New(".")

	values := make(map[string]interface{}, len(flags))
	for name, enabled := range flags {
		values[name] = enabled
	}
	// confmap cannot fail on a flat map; ignore the error like any
	// other infallible load.
	_ = k.Load(confmap.Provider(values, "."), nil)

	return &Gates{k: k}
}

// Enabled reports whether a feature is on. Unknown features default
// to enabled, so gates only ever switch functionality off.
func (g *Gates) Enabled(name string) bool {
	if !g.k.Exists(name) {
		return true
	}
	enabled := g.k.Bool(name)
	if !enabled {
		logger := logging.GetLogger("features")
		logger.Debug().Str("feature", name).Msg("Feature disabled")
	}
	return enabled
}
