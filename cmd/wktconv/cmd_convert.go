package main

import (
	"github.com/rs/zerolog/log"

	"geowkt/internal/export"
)

type CmdConvert struct {
	Format   string `short:"f" long:"format" description:"Output format" choice:"geojson" choice:"yaml" choice:"wkt" choice:"wkb" default:"geojson"`
	IncludeZ bool   `short:"z" long:"include-z" description:"Keep elevation in WKT and WKB output"`
	Indent   int    `long:"indent" description:"Indent GeoJSON and YAML output by this many spaces"`
	Output   string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
}

func init() {
	_, err := parser.AddCommand("convert",
		"Convert geometries",
		"Load a WKT, GeoJSON, CSV or KML file (or WKT lines from stdin) and export it",
		&CmdConvert{})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdConvert) Usage() string {
	return "[input]"
}

func (cmd CmdConvert) Execute(args []string) error {
	in, err := inputArg(args)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	c, err := load(in)
	if err != nil {
		return err
	}
	log.Debug().Str("input", in).Int("features", c.Len()).Str("format", string(format)).Msg("Converting")

	return writeOutput(cmd.Output, c, export.Options{
		Format:   format,
		IncludeZ: cmd.IncludeZ,
		Indent:   cmd.Indent,
	})
}
