package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/envchecker/internal/presentation/docs"
	"github.com/aretw0/envchecker/internal/presentation/tui"
	"github.com/aretw0/envchecker/pkg/schema"
	"golang.org/x/term"
)

// DocsOptions contains all the configuration for the docs command.
type DocsOptions struct {
	ConfigPath string
	Title      string
	// Raw prints markdown without terminal styling.
	Raw bool
}

// RunDocs writes the schema reference to w. Styling is applied only when
// w is a terminal and Raw is unset.
func RunDocs(opts DocsOptions, w io.Writer) error {
	cfg, err := schema.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	title := opts.Title
	if title == "" {
		title = "Environment Variables"
	}
	md := docs.GenerateMarkdown(title, cfg)

	width, isTTY := terminalWidth(w)
	if opts.Raw || !isTTY {
		_, err := io.WriteString(w, md)
		return err
	}

	render, err := tui.NewRenderer(width)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	styled, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render docs: %w", err)
	}
	_, err = io.WriteString(w, styled)
	return err
}

// terminalWidth reports the width of w when it is an interactive terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, true
	}
	return width, true
}
