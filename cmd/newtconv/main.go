// Command newtconv converts a NetCDF regridding weight file into the
// compact binary cache format.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/geosparse/newt"
	"github.com/geosparse/newt/codec"
)

var (
	file      = flag.String("file", "", "path to a regridding weight file in NetCDF format")
	out       = flag.String("out", "", "cache output path (default: input path with "+newt.CacheSuffix+" appended)")
	codecName = flag.String("codec", codec.Default.Name(), "metadata codec to use (json, go-json)")
)

func main() {
	flag.Parse()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *file == "" {
		logger.Error("missing required -file flag")
		os.Exit(1)
	}

	c, ok := codec.ByName(*codecName)
	if !ok {
		logger.Error("unknown codec", "name", *codecName)
		os.Exit(1)
	}

	start := time.Now()
	f, err := newt.ConvertWeightFile(*file, *out, newt.WithLogger(logger), newt.WithCodec(c))
	if err != nil {
		logger.Error("conversion failed", "file", *file, "err", err)
		os.Exit(1)
	}

	logger.Info("weight file summary", f.Summary()...)
	logger.Info("conversion done", "in", time.Since(start).Round(time.Millisecond))
}
