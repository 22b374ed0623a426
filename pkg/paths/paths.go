// Package paths provides centralized path handling for dotgen.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/blackwell-systems/dotgen/pkg/errors"
)

// Environment variable names
const (
	// EnvDotgenRoot is the primary environment variable for the templates root
	EnvDotgenRoot = "DOTGEN_ROOT"

	// EnvDotgenConfigDir overrides the XDG config directory for dotgen
	EnvDotgenConfigDir = "DOTGEN_CONFIG_DIR"

	// EnvDotgenDataDir overrides the XDG data directory for dotgen
	EnvDotgenDataDir = "DOTGEN_DATA_DIR"
)

// Default directories and files.
// These constants define dotgen's on-disk layout and are not
// user-configurable; the templates root itself is.
const (
	// DotgenDirName is the directory name for dotgen-specific files
	DotgenDirName = "dotgen"

	// TemplatesDir is the subdirectory holding template documents
	TemplatesDir = "templates"

	// GeneratedDir is the subdirectory holding materialized outputs
	GeneratedDir = "generated"

	// SharedConfigFile is the shared definitions file inside the root
	SharedConfigFile = "dotgen.toml"

	// TemplateExt is the extension that marks a file as a template
	TemplateExt = ".tmpl"

	// LogFileName is the name of the log file
	LogFileName = "dotgen.log"
)

// localOverrideFiles are tried in order inside the config dir; the
// first one that exists wins.
var localOverrideFiles = []string{"local.toml", "local.yaml"}

// Paths provides centralized path management for dotgen
type Paths interface {
	Root() string
	UsedFallback() bool
	TemplatesDir() string
	GeneratedDir() string
	ConfigDir() string
	DataDir() string
	SharedConfigPath() string
	LocalOverridePath() string
	OutputPath(templateName string) string
	LogFilePath() string
}

type paths struct {
	// root is the templates root directory
	root string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgData is the XDG data directory
	xdgData string

	// xdgState is the XDG state directory
	xdgState string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance with the given templates root.
// If root is empty, it is determined from DOTGEN_ROOT or falls back
// to the current working directory.
func New(root string) (Paths, error) {
	p := &paths{}

	if root == "" {
		if envRoot := os.Getenv(EnvDotgenRoot); envRoot != "" {
			p.root = expandHome(envRoot)
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInternal, "failed to get current directory")
			}
			p.root = cwd
			p.usedFallback = true
		}
	} else {
		p.root = expandHome(root)
	}

	absRoot, err := filepath.Abs(p.root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for templates root")
	}
	p.root = absRoot

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvDotgenConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, DotgenDirName)
	}

	if dataDir := os.Getenv(EnvDotgenDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, DotgenDirName)
	}

	// XDG library versions differ on StateHome support, so resolve manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, DotgenDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", DotgenDirName)
	}
}

func (p *paths) Root() string         { return p.root }
func (p *paths) UsedFallback() bool   { return p.usedFallback }
func (p *paths) TemplatesDir() string { return filepath.Join(p.root, TemplatesDir) }
func (p *paths) GeneratedDir() string { return filepath.Join(p.root, GeneratedDir) }
func (p *paths) ConfigDir() string    { return p.xdgConfig }
func (p *paths) DataDir() string      { return p.xdgData }
func (p *paths) LogFilePath() string  { return filepath.Join(p.xdgState, LogFileName) }

// SharedConfigPath returns the shared definitions file in the templates root
func (p *paths) SharedConfigPath() string {
	return filepath.Join(p.root, SharedConfigFile)
}

// LocalOverridePath returns the local override file in the config dir.
// The first existing candidate wins; when none exists the toml
// candidate is returned so callers have a stable path to create.
func (p *paths) LocalOverridePath() string {
	for _, name := range localOverrideFiles {
		candidate := filepath.Join(p.xdgConfig, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(p.xdgConfig, localOverrideFiles[0])
}

// OutputPath maps a template file name to its materialized output path
// by stripping the template extension.
func (p *paths) OutputPath(templateName string) string {
	return filepath.Join(p.GeneratedDir(), strings.TrimSuffix(templateName, TemplateExt))
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
