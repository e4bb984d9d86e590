package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/jessevdk/go-flags"

	"geowkt/internal/export"
	"geowkt/internal/feature"
	"geowkt/internal/logger"
	"geowkt/internal/source"
)

type GlobalOptions struct {
	Logger logger.Logger `group:"Logger options"`
}

var (
	globalOpts = GlobalOptions{}
	parser     = flags.NewParser(&globalOpts, flags.HelpFlag|flags.PassDoubleDash)

	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

func init() {
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if err := globalOpts.Logger.Setup(); err != nil {
			return err
		}
		return cmd.Execute(args)
	}
}

func Run(args []string) error {
	_, err := parser.ParseArgs(args)
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		parser.WriteHelp(stdout)
		return nil
	}
	return err
}

// inputArg returns the single optional input path; "" and "-" mean stdin.
func inputArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		if args[0] == "-" {
			return "", nil
		}
		return args[0], nil
	}
	return "", errors.Newf("expected at most one input, got %d", len(args))
}

// load reads path with the loader for its extension, or WKT lines from stdin.
func load(path string) (*feature.Collection, error) {
	if path == "" {
		return source.Read(stdin, source.FormatWKT)
	}
	return source.Load(path)
}

// writeOutput exports c to path, or to stdout when path is empty.
func writeOutput(path string, c *feature.Collection, opts export.Options) (err error) {
	if path == "" || path == "-" {
		return export.Write(stdout, c, opts)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return export.Write(f, c, opts)
}
