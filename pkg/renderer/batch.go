package renderer

import (
	"os"
	"path/filepath"
	"strings"

	dgerrors "github.com/blackwell-systems/dotgen/pkg/errors"
	"github.com/blackwell-systems/dotgen/pkg/logging"
	"github.com/blackwell-systems/dotgen/pkg/paths"
)

// BatchOptions controls a RenderAll pass.
type BatchOptions struct {
	// DryRun reports what would be rendered without writing.
	DryRun bool

	// Force renders every template even when the output is newer.
	Force bool
}

// BatchResult aggregates one RenderAll pass. A per-template failure
// does not abort the batch; Failed counts them and Errors carries the
// details in template order.
type BatchResult struct {
	Rendered int
	Skipped  int
	Failed   int

	Results []RenderResult
	Errors  []error
}

// Failure reports whether any template in the batch failed.
func (r *BatchResult) Failure() bool { return r.Failed > 0 }

// RenderAll renders every template in the templates directory,
// strictly sequentially in directory-listing order. Templates must
// not depend on render order; none is guaranteed beyond listing
// order. The effective map and registry are built once for the whole
// pass.
func (e *Engine) RenderAll(opts BatchOptions) (*BatchResult, error) {
	log := logging.GetLogger("renderer.batch")
	done := logging.LogOperationStart(log, "render-all")
	defer done()

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

	result := &BatchResult{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, paths.TemplateExt) {
			continue
		}

		templatePath := filepath.Join(templatesDir, name)
		outputPath := e.paths.OutputPath(name)

		if !opts.Force && upToDate(templatePath, outputPath) {
			log.Debug().Str("template", name).Msg("Output newer than template, skipping")
			result.Skipped++
			continue
		}

		res, err := e.renderOne(templatePath, outputPath, effective, registry, opts.DryRun)
		if err != nil {
			log.Error().Err(err).Str("template", name).Msg("Render failed, continuing batch")
			result.Failed++
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Rendered++
		result.Results = append(result.Results, *res)
	}

	log.Info().
		Int("rendered", result.Rendered).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("Batch render finished")
	return result, nil
}

// upToDate reports whether the output exists and is strictly newer
// than its template. Equal timestamps re-render.
func upToDate(templatePath, outputPath string) bool {
	out, err := os.Stat(outputPath)
	if err != nil {
		return false
	}
	tmpl, err := os.Stat(templatePath)
	if err != nil {
		return false
	}
	return out.ModTime().After(tmpl.ModTime())
}
