// Package newt provides a compact binary cache format for geospatial
// regridding weights, together with the conversion pipeline that builds the
// cache from a dense NetCDF weight file.
//
// A weight file maps named regions onto a global latitude/longitude grid:
// for each region, every grid cell carries the fraction of that cell
// contributing to the region's aggregate. Dense storage wastes most of its
// space on fill values, since a region covers a tiny slice of the globe.
// The cache keeps only the non-fill cells as flat fixed-size records behind
// an offset/count lookup table, so loading a single region is one bounded
// read instead of a full-grid scan.
//
// # Basic Usage
//
// Opening a weight file of either representation:
//
//	import "github.com/geosparse/newt"
//
//	f, err := newt.Open("weights.nc")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	points, _ := f.Region(0)
//	for _, p := range points {
//	    fmt.Printf("(%d,%d) weight=%f\n", p.LatIndex, p.LonIndex, p.Weight)
//	}
//
// Open sniffs the leading magic bytes: a cached file is decoded directly,
// anything else goes through NetCDF ingestion, and the resulting model is
// written back beside the source as an advisory cache for the next open.
//
// Converting explicitly, without the dispatch heuristics:
//
//	f, err := newt.ConvertWeightFile("weights.nc", "weights.nwt")
//
// # Package Structure
//
// This package provides the top-level open/convert entry points. The weight
// package holds the in-memory model with its encoder and decoder, section
// defines the fixed binary layout, and ingest runs the NetCDF extraction
// pipeline.
package newt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/geosparse/newt/codec"
	"github.com/geosparse/newt/ingest"
	"github.com/geosparse/newt/internal/ncfile"
	"github.com/geosparse/newt/internal/options"
	"github.com/geosparse/newt/section"
	"github.com/geosparse/newt/weight"
)

// CacheSuffix is the file suffix of the binary cache representation.
const CacheSuffix = ".nwt"

type config struct {
	logger     *slog.Logger
	writeCache bool
	codec      codec.Codec
}

// Option configures Open, OpenCache and ConvertWeightFile.
type Option = options.Option[*config]

// WithLogger routes dispatch and cache-write logging to the given logger
// instead of the process default.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(cfg *config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger

		return nil
	})
}

// WithoutCacheWrite disables the advisory cache write after a NetCDF
// ingestion. Useful when the source directory is read-only.
func WithoutCacheWrite() Option {
	return options.NoError(func(cfg *config) {
		cfg.writeCache = false
	})
}

// WithCodec selects the metadata codec used when encoding or decoding the
// cache representation.
func WithCodec(c codec.Codec) Option {
	return options.New(func(cfg *config) error {
		if c == nil {
			return errors.New("codec cannot be nil")
		}
		cfg.codec = c

		return nil
	})
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		logger:     slog.Default(),
		writeCache: true,
		codec:      codec.Default,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Open loads a weight file at path into the in-memory model, accepting
// either representation.
//
// The file's leading bytes decide the route: the cache magic token selects
// the binary decoder, anything else is treated as a NetCDF weight file and
// converted. After a conversion the model is also written to the same path
// with CacheSuffix appended, so the next Open of the cache path skips the
// conversion. The cache write is advisory; its failure is logged and does
// not fail the open.
func Open(path string, opts ...Option) (*weight.File, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	cached, err := hasCacheMagic(path)
	if err != nil {
		return nil, err
	}
	if cached {
		return weight.ReadFileWith(path, cfg.codec)
	}

	return openNetCDF(path, cfg)
}

// OpenCache loads a binary cache file, rejecting any other representation.
func OpenCache(path string, opts ...Option) (*weight.File, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return weight.ReadFileWith(path, cfg.codec)
}

// ConvertWeightFile converts the NetCDF weight file at srcPath into a cache
// file at dstPath and returns the in-memory model. An empty dstPath derives
// the destination from srcPath by appending CacheSuffix.
func ConvertWeightFile(srcPath, dstPath string, opts ...Option) (*weight.File, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	f, err := buildFromNetCDF(srcPath)
	if err != nil {
		return nil, err
	}

	if dstPath == "" {
		dstPath = cachePath(srcPath)
	}
	if err := weight.WriteFileWith(f, dstPath, cfg.codec); err != nil {
		return nil, fmt.Errorf("write cache %s: %w", dstPath, err)
	}

	return f, nil
}

func openNetCDF(path string, cfg *config) (*weight.File, error) {
	cfg.logger.Info("file not in cache format, converting", slog.String("path", path))

	f, err := buildFromNetCDF(path)
	if err != nil {
		return nil, err
	}

	if cfg.writeCache {
		writeAdvisoryCache(f, cachePath(path), cfg)
	}

	return f, nil
}

// writeAdvisoryCache persists the freshly ingested model beside its source.
// The write is best effort; a failure is logged and the in-memory model is
// served regardless.
func writeAdvisoryCache(f *weight.File, dst string, cfg *config) {
	if err := weight.WriteFileWith(f, dst, cfg.codec); err != nil {
		cfg.logger.Warn("cache write failed, continuing with in-memory model",
			slog.String("path", dst),
			slog.Any("error", err))

		return
	}

	cfg.logger.Info("wrote cache file", slog.String("path", dst))
}

func buildFromNetCDF(path string) (*weight.File, error) {
	src, err := ncfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return ingest.Build(src)
}

// hasCacheMagic reads just the leading magic token of the file at path.
func hasCacheMagic(path string) (bool, error) {
	fp, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer fp.Close()

	var magic [section.MagicSize]byte
	if _, err := io.ReadFull(fp, magic[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}

		return false, err
	}

	return bytes.Equal(magic[:], section.MagicToken[:]), nil
}

// cachePath derives the advisory cache destination for a source weight
// file. The suffix is appended unconditionally: a dense source that merely
// happens to carry the cache suffix must never be overwritten by its own
// conversion.
func cachePath(srcPath string) string {
	return srcPath + CacheSuffix
}
