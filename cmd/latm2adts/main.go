// Package main converts a LOAS/LATM stream to ADTS.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/llehouerou/go-latm"
)

const (
	flagStream = "stream"
	flagDebug  = "debug"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "latm2adts:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "latm2adts",
		Usage:     "rewrite the AAC LC access units of a LOAS stream as ADTS",
		ArgsUsage: "LATMFILE ADTSFILE",
		Description: "Use - for standard input or standard output. " +
			"Elements read before the first StreamMuxConfig are skipped.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    flagStream,
				Aliases: []string{"s"},
				Usage:   "LATM stream `ID` to extract",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Action: convert,
	}
}

func convert(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("expected LATMFILE and ADTSFILE")
	}
	logger, err := newLogger(c.Bool(flagDebug))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	src, closeSrc, err := openInput(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer closeSrc()

	dst, closeDst, err := createOutput(c.Args().Get(1))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(dst)
	n, err := latm.ConvertLOASToADTS(w, src, c.Int(flagStream), latm.WithLogger(logger))
	if err != nil {
		_ = closeDst()
		return errors.Wrapf(err, "after %d frames", n)
	}
	if err := w.Flush(); err != nil {
		_ = closeDst()
		return errors.Wrap(err, "flush output")
	}
	if err := closeDst(); err != nil {
		return errors.Wrap(err, "close output")
	}

	logger.Info("conversion done", zap.Int("frames", n), zap.Int("stream", c.Int(flagStream)))
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, errors.Wrap(err, "create logger")
	}
	return logger, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open input")
	}
	return f, func() { _ = f.Close() }, nil
}

func createOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create output")
	}
	return f, f.Close, nil
}
