package main

// Message constants
const (
	MsgRenderShort   = "Render one template to its output file"
	MsgRegenShort    = "Render every template in the templates directory"
	MsgValidateShort = "Check templates for unbalanced directives"
	MsgDiffShort     = "Report drift between templates and generated outputs"
	MsgVarsShort     = "Print the effective variable map and where each value came from"
	MsgInitShort     = "Create the templates layout and a starter config"
	MsgSyntaxShort   = "Show the template language reference"

	MsgRendered       = "rendered %s\n"
	MsgWouldRender    = "would render %s (dry run)\n"
	MsgRenderDisabled = "rendering is disabled by the 'render' feature flag"
	MsgValidateOK     = "all templates are structurally balanced"
	MsgDiffSummary    = "%d changed, %d missing, %d up-to-date\n"
	MsgInitDone       = "initialized dotgen layout in %s\n"
	MsgInitExists     = "config already exists at %s, leaving it alone\n"
	MsgUnresolved     = "warning: unresolved reference {{%s}}\n"
	MsgWarning        = "warning: %s\n"
)
