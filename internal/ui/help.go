package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	styles *Styles
	keys   keyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(styles *Styles, keys keyMap) *HelpRenderer {
	return &HelpRenderer{styles: styles, keys: keys}
}

// RenderHelpContent generates the full help page shown in the pager
func (r *HelpRenderer) RenderHelpContent() string {
	var help strings.Builder

	help.WriteString(r.styles.Title.Render("imagepicker help"))
	help.WriteString("\n")

	sections := []string{"Navigation", "Scrolling", "Selection"}
	for i, group := range r.keys.FullHelp() {
		help.WriteString(r.styles.Section.Render(sections[i]))
		help.WriteString("\n")
		for _, b := range group {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %-10s %s\n", r.styles.Key.Render(h.Key), r.styles.Desc.Render(h.Desc)))
		}
	}

	help.WriteString(r.styles.Section.Render("Mouse"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %-10s %s\n", r.styles.Key.Render("click"), r.styles.Desc.Render("pick the clicked thumbnail")))
	help.WriteString(fmt.Sprintf("  %-10s %s\n", r.styles.Key.Render("wheel"), r.styles.Desc.Render("scroll")))
	help.WriteString("\n")
	help.WriteString(r.styles.Dim.Render("In single-select mode a pick replaces the previous one."))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
