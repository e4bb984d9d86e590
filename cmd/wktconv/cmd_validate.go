package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"geowkt/internal/geom"
	"geowkt/internal/source"
)

type CmdValidate struct{}

func init() {
	_, err := parser.AddCommand("validate",
		"Validate WKT",
		"Parse every WKT line of a file or stdin and report the invalid ones",
		&CmdValidate{})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdValidate) Usage() string {
	return "[input.wkt]"
}

func (cmd CmdValidate) Execute(args []string) error {
	in, err := inputArg(args)
	if err != nil {
		return err
	}
	var r io.Reader = stdin
	if in != "" {
		f, err := os.Open(in)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	total, invalid := 0, 0
	err = source.ScanWKT(r, func(n int, g geom.Geometry, err error) bool {
		total++
		if err != nil {
			invalid++
			log.Error().Err(err).Int("line", n).Str("category", geom.Category(err)).Msg("Invalid WKT")
		}
		return true
	})
	if err != nil {
		return err
	}

	log.Info().Int("lines", total).Int("invalid", invalid).Msg("Validated")
	if invalid > 0 {
		return errors.Newf("%d of %d lines invalid", invalid, total)
	}
	return nil
}
