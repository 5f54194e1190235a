// Package main prints the structure of LOAS/LATM and ADTS files.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	flagFormat   = "format"
	flagParallel = "parallel"
	flagDebug    = "debug"

	formatLOAS = "loas"
	formatADTS = "adts"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "latmdump:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "latmdump",
		Usage:     "print the elements of LOAS/LATM or ADTS files",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagFormat,
				Aliases: []string{"f"},
				Value:   formatLOAS,
				Usage:   "input framing, loas or adts",
			},
			&cli.IntFlag{
				Name:  flagParallel,
				Value: 4,
				Usage: "number of files decoded concurrently",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Action: dump,
	}
}

func dump(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("expected at least one FILE")
	}

	var dumpFile func(d *dumper, ctx context.Context, path string) error
	switch format := c.String(flagFormat); format {
	case formatLOAS:
		dumpFile = (*dumper).loasFile
	case formatADTS:
		dumpFile = (*dumper).adtsFile
	default:
		return errors.Errorf("unknown format %q", format)
	}

	logger := zap.NewNop()
	if c.Bool(flagDebug) {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return errors.Wrap(err, "create logger")
		}
	}
	defer func() { _ = logger.Sync() }()

	paths := c.Args().Slice()
	outputs := make([]bytes.Buffer, len(paths))

	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(max(c.Int(flagParallel), 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d := &dumper{w: &outputs[i], log: logger.With(zap.String("file", path))}
			return errors.Wrap(dumpFile(d, ctx, path), path)
		})
	}
	err := g.Wait()

	// Files are printed in argument order once all are decoded.
	for i := range outputs {
		if _, werr := outputs[i].WriteTo(c.App.Writer); werr != nil {
			return werr
		}
	}
	return err
}
