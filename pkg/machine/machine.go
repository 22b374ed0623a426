// Package machine detects properties of the host dotgen runs on.
// Detection results feed the lowest-precedence variable layer, so any
// value here can be overridden by config files or the environment.
package machine

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/blackwell-systems/dotgen/pkg/logging"
)

// Machine types form a closed set. Detection that cannot decide
// returns TypeUnknown, which contributes no machine-type layer.
const (
	TypeWork     = "work"
	TypePersonal = "personal"
	TypeUnknown  = "unknown"
)

// EnvMachineType overrides the machine type for one invocation.
const EnvMachineType = "DOTGEN_MACHINE_TYPE"

// knownTypes is the closed set a selector may return.
var knownTypes = map[string]bool{
	TypeWork:     true,
	TypePersonal: true,
}

// Detect gathers the auto-detected variable layer. It runs fresh on
// every render pass; nothing is cached.
func Detect() map[string]string {
	log := logging.GetLogger("machine")

	vars := map[string]string{
		"os":   normalizeOS(runtime.GOOS),
		"arch": runtime.GOARCH,
	}

	if hostname, err := os.Hostname(); err == nil {
		// Short hostname only; FQDNs differ per network, not per machine
		vars["hostname"] = strings.SplitN(hostname, ".", 2)[0]
	}

	if home, err := os.UserHomeDir(); err == nil {
		vars["home"] = home
	}

	if user := os.Getenv("USER"); user != "" {
		vars["user"] = user
	} else if user := os.Getenv("USERNAME"); user != "" {
		vars["user"] = user
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		vars["shell"] = filepath.Base(shell)
	}

	log.Debug().Interface("vars", vars).Msg("Detected machine variables")
	return vars
}

// SelectType resolves the machine type for this invocation. The
// DOTGEN_MACHINE_TYPE environment variable wins over the configured
// value; anything outside the known set maps to TypeUnknown.
func SelectType(configured string) string {
	log := logging.GetLogger("machine")

	selected := configured
	if env := os.Getenv(EnvMachineType); env != "" {
		selected = env
	}
	selected = strings.ToLower(strings.TrimSpace(selected))

	if !knownTypes[selected] {
		if selected != "" && selected != TypeUnknown {
			log.Warn().Str("type", selected).Msg("Unrecognized machine type, treating as unknown")
		}
		return TypeUnknown
	}
	return selected
}

// normalizeOS maps Go's GOOS values onto the names templates use
func normalizeOS(goos string) string {
	switch goos {
	case "darwin":
		return "macos"
	default:
		return goos
	}
}
