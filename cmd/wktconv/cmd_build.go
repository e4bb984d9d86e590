package main

import (
	"github.com/rs/zerolog/log"

	"geowkt/internal/config"
	"geowkt/internal/export"
)

// CmdBuild flags left unset fall back to the output section of the file.
type CmdBuild struct {
	Config   string `short:"c" long:"config" description:"YAML feature file" required:"true"`
	Format   string `short:"f" long:"format" description:"Output format (default from file, then geojson)" choice:"geojson" choice:"yaml" choice:"wkt" choice:"wkb"`
	IncludeZ bool   `short:"z" long:"include-z" description:"Keep elevation in WKT and WKB output"`
	Indent   int    `long:"indent" description:"Indent GeoJSON and YAML output by this many spaces"`
	Output   string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
}

func init() {
	_, err := parser.AddCommand("build",
		"Build a collection",
		"Build a feature collection from a YAML file of WKT features and export it",
		&CmdBuild{})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdBuild) Execute(args []string) error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	c, err := cfg.Build()
	if err != nil {
		return err
	}

	opts := export.Options{
		IncludeZ: cmd.IncludeZ || cfg.Output.IncludeZ,
		Indent:   cfg.Output.Indent,
	}
	if cmd.Indent > 0 {
		opts.Indent = cmd.Indent
	}
	name := cfg.Output.Format
	if cmd.Format != "" {
		name = cmd.Format
	}
	if name != "" {
		if opts.Format, err = export.ParseFormat(name); err != nil {
			return err
		}
	}

	log.Info().Str("config", cmd.Config).Int("features", c.Len()).Msg("Built collection")
	return writeOutput(cmd.Output, c, opts)
}
