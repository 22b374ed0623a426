package renderer

import (
	"os"
	"path/filepath"

	"github.com/blackwell-systems/dotgen/pkg/arrays"
	dgerrors "github.com/blackwell-systems/dotgen/pkg/errors"
	"github.com/blackwell-systems/dotgen/pkg/logging"
	"github.com/blackwell-systems/dotgen/pkg/template"
)

// RenderResult describes one rendered template.
type RenderResult struct {
	TemplatePath string
	OutputPath   string

	// Written is false for dry runs.
	Written bool

	// Unresolved and Warnings are advisory, passed through from the
	// template engine.
	Unresolved []string
	Warnings   []string
}

// RenderFile renders a single template. An empty outputPath derives
// the output from the template name in the generated directory. A
// missing template is fatal to the operation; nothing is written.
func (e *Engine) RenderFile(templatePath, outputPath string, dryRun bool) (*RenderResult, error) {
	effective := e.EffectiveVariables()
	return e.renderOne(templatePath, outputPath, effective, e.Registry(), dryRun)
}

// renderOne is the shared render step. The caller supplies the
// per-pass effective map and registry so a batch pass builds them
// exactly once.
func (e *Engine) renderOne(templatePath, outputPath string, effective map[string]string, registry *arrays.Registry, dryRun bool) (*RenderResult, error) {
	log := logging.GetLogger("renderer")

	data, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dgerrors.Wrapf(err, dgerrors.ErrTemplateNotFound, "template not found at %s", templatePath)
		}
		return nil, dgerrors.Wrapf(err, dgerrors.ErrTemplateRead, "failed to read template %s", templatePath)
	}

	if outputPath == "" {
		outputPath = e.paths.OutputPath(filepath.Base(templatePath))
	}

	result := template.Render(string(data), effective, registry)

	res := &RenderResult{
		TemplatePath: templatePath,
		OutputPath:   outputPath,
		Unresolved:   result.Unresolved,
		Warnings:     result.Warnings,
	}
	if dryRun {
		log.Info().Str("template", templatePath).Str("output", outputPath).Msg("Dry run, not writing")
		return res, nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, dgerrors.Wrapf(err, dgerrors.ErrOutputDir, "failed to create output directory for %s", outputPath)
	}
	if err := writeFileAtomic(outputPath, []byte(result.Text)); err != nil {
		return nil, err
	}
	res.Written = true

	log.Info().
		Str("template", templatePath).
		Str("output", outputPath).
		Int("unresolved", len(result.Unresolved)).
		Msg("Template rendered")
	return res, nil
}

// writeFileAtomic writes via a temp file and rename so a failed write
// never leaves a partially written output.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dotgen-*")
	if err != nil {
		return dgerrors.Wrapf(err, dgerrors.ErrRenderWrite, "failed to create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return dgerrors.Wrapf(err, dgerrors.ErrRenderWrite, "failed to write output for %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return dgerrors.Wrapf(err, dgerrors.ErrRenderWrite, "failed to flush output for %s", path)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return dgerrors.Wrapf(err, dgerrors.ErrRenderWrite, "failed to set mode on output for %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return dgerrors.Wrapf(err, dgerrors.ErrRenderWrite, "failed to move output into place at %s", path)
	}
	return nil
}

// ValidateFile runs the structural validator over one template file.
func (e *Engine) ValidateFile(templatePath string) ([]template.Issue, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dgerrors.Wrapf(err, dgerrors.ErrTemplateNotFound, "template not found at %s", templatePath)
		}
		return nil, dgerrors.Wrapf(err, dgerrors.ErrTemplateRead, "failed to read template %s", templatePath)
	}
	return template.Validate(string(data)), nil
}
