// Package config reads the variable-layer sources and tool settings.
// Three files participate: embedded defaults, the shared dotgen.toml
// in the templates root, and a per-machine override file (toml or
// yaml) in the config directory. Sources are read once per render
// pass and never cached across passes.
package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	koanftoml "github.com/knadh/koanf/parsers/toml"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	dgerrors "github.com/blackwell-systems/dotgen/pkg/errors"
	"github.com/blackwell-systems/dotgen/pkg/logging"
	"github.com/blackwell-systems/dotgen/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Config is the loaded result of all configuration sources. The
// variable layers are kept separate; merging is pkg/vars' job.
type Config struct {
	// MachineType is the configured machine type, before the selector
	// applies its environment override.
	MachineType string

	// Defaults is the default variable layer ([variables] in the
	// shared file).
	Defaults map[string]string

	// MachineVars maps machine type to its variable layer
	// ([machine.<type>.variables] in the shared file).
	MachineVars map[string]map[string]string

	// Local is the local-override variable layer ([variables] in the
	// override file).
	Local map[string]string

	// Arrays maps array names to pipe-delimited records ([arrays]).
	Arrays map[string][]string

	// Schemas maps array names to pipe-delimited field lists
	// ([schemas]).
	Schemas map[string]string

	// Flags holds feature gates ([flags]).
	Flags map[string]bool
}

// Load reads all configuration sources for one pass.
func Load(p paths.Paths) (*Config, error) {
	log := logging.GetLogger("config")

	shared := koanf.New(".")
	if err := shared.Load(&rawBytesProvider{bytes: defaultConfig}, koanftoml.Parser()); err != nil {
		return nil, dgerrors.Wrap(err, dgerrors.ErrConfigParse, "failed to load embedded defaults")
	}

	sharedPath := p.SharedConfigPath()
	if _, err := os.Stat(sharedPath); err == nil {
		if err := shared.Load(file.Provider(sharedPath), koanftoml.Parser()); err != nil {
			return nil, dgerrors.Wrapf(err, dgerrors.ErrConfigLoad, "failed to load shared config from %s", sharedPath)
		}
		log.Debug().Str("path", sharedPath).Msg("Shared config loaded")
	}

	local := koanf.New(".")
	localPath := p.LocalOverridePath()
	if _, err := os.Stat(localPath); err == nil {
		if err := local.Load(file.Provider(localPath), parserFor(localPath)); err != nil {
			return nil, dgerrors.Wrapf(err, dgerrors.ErrConfigLoad, "failed to load local override from %s", localPath)
		}
		log.Debug().Str("path", localPath).Msg("Local override loaded")
	}

	// Settings (not template variables) may also come from DOTGEN_*
	// environment variables: DOTGEN_MACHINE_TYPE -> machine.type.
	// DOTGEN_TMPL_* is the variable layer and is scanned elsewhere.
	envK := koanf.New(".")
	if err := envK.Load(env.Provider("DOTGEN_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "DOTGEN_")), "_", ".")
	}), nil); err != nil {
		return nil, dgerrors.Wrap(err, dgerrors.ErrConfigLoad, "failed to load env settings")
	}

	cfg := &Config{
		Defaults:    shared.StringMap("variables"),
		MachineVars: make(map[string]map[string]string),
		Local:       local.StringMap("variables"),
		Arrays:      make(map[string][]string),
		Schemas:     shared.StringMap("schemas"),
		Flags:       make(map[string]bool),
	}

	for _, typ := range shared.MapKeys("machine") {
		if typ == "type" {
			continue
		}
		if vars := shared.StringMap("machine." + typ + ".variables"); len(vars) > 0 {
			cfg.MachineVars[typ] = vars
		}
	}

	for _, name := range shared.MapKeys("arrays") {
		cfg.Arrays[name] = shared.Strings("arrays." + name)
	}

	for _, name := range shared.MapKeys("flags") {
		cfg.Flags[name] = shared.Bool("flags." + name)
	}

	// Machine type: local file wins over shared, env wins over both.
	cfg.MachineType = firstNonEmpty(
		envK.String("machine.type"),
		local.String("machine.type"),
		shared.String("machine.type"),
	)

	return cfg, nil
}

// parserFor picks the koanf parser by file extension; toml unless the
// file says yaml.
func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return koanfyaml.Parser()
	default:
		return koanftoml.Parser()
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
