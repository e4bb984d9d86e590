package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"geowkt/internal/logger"
	"geowkt/internal/tui"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Args struct {
		Path string `positional-arg-name:"file" description:"WKT, GeoJSON, CSV or KML file to open"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// the alternate screen owns the terminal, so logs go nowhere unless a file is set
	if err := opts.Logger.SetupWith(io.Discard); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var m tea.Model
	if opts.Args.Path != "" {
		m = tui.NewWithPath(opts.Args.Path)
	} else {
		m = tui.New()
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Error().Err(err).Msg("Viewer exited")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
