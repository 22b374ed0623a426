// Package renderer ties the variable layers, array registry, and
// template engine together into the operations the CLI exposes:
// single-file render, batch render, and drift reporting.
package renderer

import (
	"os"

	"github.com/blackwell-systems/dotgen/pkg/arrays"
	"github.com/blackwell-systems/dotgen/pkg/config"
	"github.com/blackwell-systems/dotgen/pkg/machine"
	"github.com/blackwell-systems/dotgen/pkg/paths"
	"github.com/blackwell-systems/dotgen/pkg/vars"
)

// Engine performs render passes against one templates root. All
// operations are synchronous and sequential; nothing here is safe for
// concurrent use of a single Engine, and nothing needs to be.
type Engine struct {
	paths paths.Paths
	cfg   *config.Config
}

// New loads configuration and returns an engine for the given paths.
func New(p paths.Paths) (*Engine, error) {
	cfg, err := config.Load(p)
	if err != nil {
		return nil, err
	}
	return &Engine{paths: p, cfg: cfg}, nil
}

// Config exposes the loaded configuration (for feature gates and the
// vars command).
func (e *Engine) Config() *config.Config { return e.cfg }

// Paths exposes the path layout the engine operates on.
func (e *Engine) Paths() paths.Paths { return e.paths }

// Layers assembles the five variable layers for one render pass.
// Auto-detection and the environment scan run fresh every call.
func (e *Engine) Layers() vars.Layers {
	return vars.Layers{
		Auto:         machine.Detect(),
		Default:      e.cfg.Defaults,
		MachineType:  e.cfg.MachineVars,
		SelectedType: machine.SelectType(e.cfg.MachineType),
		Local:        e.cfg.Local,
		Environment:  vars.ScanEnvironment(os.Environ()),
	}
}

// EffectiveVariables merges the layers into the effective map.
func (e *Engine) EffectiveVariables() map[string]string {
	return e.Layers().Merge()
}

// Registry builds the array registry from configuration.
func (e *Engine) Registry() *arrays.Registry {
	r := arrays.NewRegistry()
	for name, records := range e.cfg.Arrays {
		r.Define(name, records)
	}
	for name, schema := range e.cfg.Schemas {
		r.DefineSchema(name, schema)
	}
	return r
}
