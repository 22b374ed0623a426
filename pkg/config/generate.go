package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	dgerrors "github.com/blackwell-systems/dotgen/pkg/errors"
)

// starterConfig is the shape of the generated shared config file.
// Field order mirrors how users read the file: variables first, then
// machine-type overrides, then arrays.
type starterConfig struct {
	Variables map[string]string         `toml:"variables"`
	Machine   map[string]starterMachine `toml:"machine"`
	Arrays    map[string][]string       `toml:"arrays"`
	Schemas   map[string]string         `toml:"schemas"`
	Flags     map[string]bool           `toml:"flags"`
}

type starterMachine struct {
	Variables map[string]string `toml:"variables"`
}

// Starter returns the contents of a starter dotgen.toml with one
// worked example per concept.
func Starter() ([]byte, error) {
	starter := starterConfig{
		Variables: map[string]string{
			"editor":    "vim",
			"git_name":  "Your Name",
			"git_email": "you@example.com",
		},
		Machine: map[string]starterMachine{
			"work": {Variables: map[string]string{
				"git_email": "you@work.example.com",
			}},
			"personal": {Variables: map[string]string{}},
		},
		Arrays: map[string][]string{
			"ssh_hosts": {
				"github|github.com|git|~/.ssh/id_ed25519|",
			},
		},
		Schemas: map[string]string{
			"ssh_hosts": "name|hostname|user|identity|extra",
		},
		Flags: map[string]bool{
			"render": true,
		},
	}

	data, err := toml.Marshal(starter)
	if err != nil {
		return nil, dgerrors.Wrap(err, dgerrors.ErrInternal, "failed to marshal starter config")
	}
	return data, nil
}

// WriteStarter writes the starter config to path. It refuses to
// overwrite an existing file.
func WriteStarter(path string) error {
	if _, err := os.Stat(path); err == nil {
		return dgerrors.Newf(dgerrors.ErrInvalidInput, "config file already exists at %s", path)
	}

	data, err := Starter()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return dgerrors.Wrapf(err, dgerrors.ErrConfigWrite, "failed to write starter config to %s", path)
	}
	return nil
}
