package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/blackwell-systems/dotgen/pkg/renderer"
)

var (
	styleChanged  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleMissing  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleUpToDate = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// colorEnabled gates all styled output on a real color terminal.
func colorEnabled() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// diffStatusLabel renders a diff status, styled when the terminal
// supports it.
func diffStatusLabel(status renderer.DiffStatus) string {
	label := fmt.Sprintf("%-10s", status)
	if !colorEnabled() {
		return label
	}
	switch status {
	case renderer.DiffChanged:
		return styleChanged.Render(label)
	case renderer.DiffMissing:
		return styleMissing.Render(label)
	default:
		return styleUpToDate.Render(label)
	}
}

// printBatchSummary prints the regen result as a small table.
func printBatchSummary(res *renderer.BatchResult, dryRun bool) {
	verb := "rendered"
	if dryRun {
		verb = "would render"
	}

	if !colorEnabled() {
		fmt.Printf("%s %d, skipped %d, failed %d\n", verb, res.Rendered, res.Skipped, res.Failed)
		return
	}

	data := pterm.TableData{
		{verb, fmt.Sprintf("%d", res.Rendered)},
		{"skipped", fmt.Sprintf("%d", res.Skipped)},
		{"failed", fmt.Sprintf("%d", res.Failed)},
	}
	out, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		fmt.Printf("%s %d, skipped %d, failed %d\n", verb, res.Rendered, res.Skipped, res.Failed)
		return
	}
	fmt.Println(out)
}

// printVarsTable prints the effective map with per-name source layer.
func printVarsTable(effective map[string]string, sources map[string]string) {
	names := make([]string, 0, len(effective))
	for name := range effective {
		names = append(names, name)
	}
	sort.Strings(names)

	if !colorEnabled() {
		for _, name := range names {
			fmt.Printf("%s=%s\t(%s)\n", name, effective[name], sources[name])
		}
		return
	}

	data := pterm.TableData{{"NAME", "VALUE", "SOURCE"}}
	for _, name := range names {
		data = append(data, []string{name, effective[name], sources[name]})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		for _, name := range names {
			fmt.Printf("%s=%s\t(%s)\n", name, effective[name], sources[name])
		}
		return
	}
	fmt.Println(out)
}
