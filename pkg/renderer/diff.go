package renderer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	dgerrors "github.com/blackwell-systems/dotgen/pkg/errors"
	"github.com/blackwell-systems/dotgen/pkg/logging"
	"github.com/blackwell-systems/dotgen/pkg/paths"
	"github.com/blackwell-systems/dotgen/pkg/template"
)

// DiffStatus classifies one template against its materialized output.
type DiffStatus string

const (
	// DiffMissing means no materialized output exists yet.
	DiffMissing DiffStatus = "missing"

	// DiffChanged means a fresh render differs byte-for-byte from the
	// materialized output.
	DiffChanged DiffStatus = "changed"

	// DiffUpToDate means a fresh render matches the output exactly.
	DiffUpToDate DiffStatus = "up-to-date"
)

// DiffEntry is one template's drift result.
type DiffEntry struct {
	Template string
	Output   string
	Status   DiffStatus
}

// DiffReport aggregates a drift pass over all templates.
type DiffReport struct {
	Entries  []DiffEntry
	Missing  int
	Changed  int
	UpToDate int
}

// Diff re-renders every template with the current effective map and
// compares byte-for-byte against the materialized output. Outputs are
// never mutated; rendering happens in memory only.
func (e *Engine) Diff() (*DiffReport, error) {
	log := logging.GetLogger("renderer.diff")

	templatesDir := e.paths.TemplatesDir()
	entries, err := os.ReadDir(templatesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dgerrors.Newf(dgerrors.ErrNotFound, "templates directory not found at %s", templatesDir)
		}
		return nil, dgerrors.Wrapf(err, dgerrors.ErrTemplateRead, "failed to list templates in %s", templatesDir)
	}

	effective := e.EffectiveVariables()
	registry := e.Registry()

	report := &DiffReport{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, paths.TemplateExt) {
			continue
		}

		templatePath := filepath.Join(templatesDir, name)
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, dgerrors.Wrapf(err, dgerrors.ErrTemplateRead, "failed to read template %s", templatePath)
		}
		fresh := template.Render(string(data), effective, registry)

		outputPath := e.paths.OutputPath(name)
		existing, err := os.ReadFile(outputPath)

		dEntry := DiffEntry{Template: name, Output: outputPath}
		switch {
		case os.IsNotExist(err):
			dEntry.Status = DiffMissing
			report.Missing++
		case err != nil:
			return nil, dgerrors.Wrapf(err, dgerrors.ErrTemplateRead, "failed to read output %s", outputPath)
		case !bytes.Equal(existing, []byte(fresh.Text)):
			dEntry.Status = DiffChanged
			report.Changed++
		default:
			dEntry.Status = DiffUpToDate
			report.UpToDate++
		}
		report.Entries = append(report.Entries, dEntry)
	}

	log.Debug().
		Int("missing", report.Missing).
		Int("changed", report.Changed).
		Int("upToDate", report.UpToDate).
		Msg("Diff pass finished")
	return report, nil
}
