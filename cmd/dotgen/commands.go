package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/dotgen/pkg/config"
	dgerrors "github.com/blackwell-systems/dotgen/pkg/errors"
	"github.com/blackwell-systems/dotgen/pkg/features"
	"github.com/blackwell-systems/dotgen/pkg/paths"
	"github.com/blackwell-systems/dotgen/pkg/renderer"
)

// newEngine builds the rendering engine for one command invocation,
// honoring the --root flag.
func newEngine() (*renderer.Engine, error) {
	p, err := paths.New(rootFlag)
	if err != nil {
		return nil, err
	}
	return renderer.New(p)
}

// resolveTemplatePath accepts either a path to a template file or a
// bare template name looked up in the templates directory.
func resolveTemplatePath(p paths.Paths, arg string) string {
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	return filepath.Join(p.TemplatesDir(), arg)
}

func newRenderCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: MsgRenderShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			if !features.New(engine.Config().Flags).Enabled("render") {
				fmt.Println(MsgRenderDisabled)
				return nil
			}

			templatePath := resolveTemplatePath(engine.Paths(), args[0])
			res, err := engine.RenderFile(templatePath, outputPath, dryRun)
			if err != nil {
				return err
			}

			printAdvisories(res.Unresolved, res.Warnings)
			if res.Written {
				fmt.Printf(MsgRendered, res.OutputPath)
			} else {
				fmt.Printf(MsgWouldRender, res.OutputPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: generated dir, template extension stripped)")
	return cmd
}

func newRegenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regen",
		Short: MsgRegenShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			if !features.New(engine.Config().Flags).Enabled("render") {
				fmt.Println(MsgRenderDisabled)
				return nil
			}

			res, err := engine.RenderAll(renderer.BatchOptions{DryRun: dryRun, Force: force})
			if err != nil {
				return err
			}

			for _, r := range res.Results {
				printAdvisories(r.Unresolved, r.Warnings)
			}
			printBatchSummary(res, dryRun)

			if res.Failure() {
				return dgerrors.Newf(dgerrors.ErrRenderWrite, "%d of %d templates failed", res.Failed, res.Rendered+res.Skipped+res.Failed)
			}
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [template...]",
		Short: MsgValidateShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			templates := args
			if len(templates) == 0 {
				templates, err = listTemplates(engine.Paths())
				if err != nil {
					return err
				}
			}

			total := 0
			for _, name := range templates {
				templatePath := resolveTemplatePath(engine.Paths(), name)
				issues, err := engine.ValidateFile(templatePath)
				if err != nil {
					return err
				}
				for _, issue := range issues {
					fmt.Printf("%s: %s\n", filepath.Base(templatePath), issue.Message)
				}
				total += len(issues)
			}

			if total > 0 {
				return dgerrors.Newf(dgerrors.ErrInvalidInput, "%d structural issue(s) found", total)
			}
			fmt.Println(MsgValidateOK)
			return nil
		},
	}
}

func newDiffCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "diff",
		Short: MsgDiffShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			report, err := engine.Diff()
			if err != nil {
				return err
			}

			for _, entry := range report.Entries {
				if !verbose && entry.Status == renderer.DiffUpToDate {
					continue
				}
				fmt.Printf("%s %s\n", diffStatusLabel(entry.Status), entry.Template)
			}
			fmt.Printf(MsgDiffSummary, report.Changed, report.Missing, report.UpToDate)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose-diff", "V", false, "Also list up-to-date outputs")
	return cmd
}

func newVarsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "vars",
		Short: MsgVarsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			layers := engine.Layers()
			effective := layers.Merge()

			if format == "yaml" {
				data, err := yaml.Marshal(effective)
				if err != nil {
					return dgerrors.Wrap(err, dgerrors.ErrInternal, "failed to marshal variables")
				}
				fmt.Print(string(data))
				return nil
			}

			printVarsTable(effective, layers.Sources())
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format: text or yaml")
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New(rootFlag)
			if err != nil {
				return err
			}

			for _, dir := range []string{p.TemplatesDir(), p.GeneratedDir()} {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return dgerrors.Wrapf(err, dgerrors.ErrOutputDir, "failed to create %s", dir)
				}
			}

			configPath := p.SharedConfigPath()
			if _, err := os.Stat(configPath); err == nil {
				fmt.Printf(MsgInitExists, configPath)
				return nil
			}
			if err := config.WriteStarter(configPath); err != nil {
				return err
			}
			fmt.Printf(MsgInitDone, p.Root())
			return nil
		},
	}
}

// listTemplates returns the template file names in listing order.
func listTemplates(p paths.Paths) ([]string, error) {
	entries, err := os.ReadDir(p.TemplatesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dgerrors.Newf(dgerrors.ErrNotFound, "templates directory not found at %s", p.TemplatesDir())
		}
		return nil, dgerrors.Wrapf(err, dgerrors.ErrTemplateRead, "failed to list templates in %s", p.TemplatesDir())
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == paths.TemplateExt {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// printAdvisories reports unresolved references and structural
// warnings without failing the command.
func printAdvisories(unresolved, warnings []string) {
	for _, name := range unresolved {
		fmt.Fprintf(os.Stderr, MsgUnresolved, name)
	}
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, MsgWarning, warning)
	}
}
