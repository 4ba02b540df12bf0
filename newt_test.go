package newt

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geosparse/newt/codec"
	"github.com/geosparse/newt/errs"
	"github.com/geosparse/newt/metadata"
	"github.com/geosparse/newt/section"
	"github.com/geosparse/newt/weight"
)

func newTestFile(t *testing.T) *weight.File {
	t.Helper()

	meta := metadata.NewStore()
	meta.AddGlobalAttr("title", "aggregation weights")
	meta.AddPolyID("AUS")
	meta.AddPolyID("BRA")

	regions := [][]section.GridPoint{
		{
			{LatIndex: 0, LonIndex: 1, Lat: 10.5, Lon: 21.5, Weight: 5.0},
			{LatIndex: 1, LonIndex: 0, Lat: 11.5, Lon: 20.5, Weight: 3.0},
		},
		{},
	}

	f, err := weight.New(meta, 2, 2, regions)
	require.NoError(t, err)

	return f
}

func writeTestCache(t *testing.T, f *weight.File) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "weights"+CacheSuffix)
	require.NoError(t, weight.WriteFile(f, path))

	return path
}

func TestOpen_CacheFile(t *testing.T) {
	want := newTestFile(t)
	path := writeTestCache(t, want)

	got, err := Open(path)
	require.NoError(t, err)

	require.Equal(t, want.Metadata(), got.Metadata())
	require.Equal(t, want.LookupTable(), got.LookupTable())
	require.Equal(t, want.Regions(), got.Regions())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.nc"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_GarbageFile(t *testing.T) {
	// No cache magic, not a NetCDF file either.
	path := filepath.Join(t.TempDir(), "garbage.nc")
	require.NoError(t, os.WriteFile(path, []byte("not a weight file"), 0o644))

	_, err := Open(path, WithLogger(discardLogger()))
	require.Error(t, err)
}

func TestOpen_ShortFile(t *testing.T) {
	// Shorter than the magic token; falls through to NetCDF dispatch and
	// fails there rather than erroring on the sniff.
	path := filepath.Join(t.TempDir(), "tiny.nc")
	require.NoError(t, os.WriteFile(path, []byte{'N'}, 0o644))

	_, err := Open(path, WithLogger(discardLogger()))
	require.Error(t, err)
}

func TestOpenCache(t *testing.T) {
	want := newTestFile(t)
	path := writeTestCache(t, want)

	got, err := OpenCache(path)
	require.NoError(t, err)
	require.Equal(t, want.Regions(), got.Regions())
}

func TestOpenCache_RejectsOtherFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.nc")
	require.NoError(t, os.WriteFile(path, []byte("CDF\x01 pretend netcdf"), 0o644))

	_, err := OpenCache(path)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestOptions(t *testing.T) {
	t.Run("NilLogger", func(t *testing.T) {
		_, err := Open("irrelevant", WithLogger(nil))
		require.Error(t, err)
		require.Contains(t, err.Error(), "logger")
	})

	t.Run("NilCodec", func(t *testing.T) {
		_, err := Open("irrelevant", WithCodec(nil))
		require.Error(t, err)
		require.Contains(t, err.Error(), "codec")
	})

	t.Run("WithCodec", func(t *testing.T) {
		want := newTestFile(t)
		path := filepath.Join(t.TempDir(), "weights"+CacheSuffix)
		require.NoError(t, weight.WriteFileWith(want, path, codec.JSON{}))

		got, err := OpenCache(path, WithCodec(codec.JSON{}))
		require.NoError(t, err)
		require.Equal(t, want.Metadata(), got.Metadata())
	})

	t.Run("WithoutCacheWrite", func(t *testing.T) {
		cfg, err := newConfig(WithoutCacheWrite())
		require.NoError(t, err)
		require.False(t, cfg.writeCache)
	})

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := newConfig()
		require.NoError(t, err)
		require.True(t, cfg.writeCache)
		require.Equal(t, codec.Default, cfg.codec)
		require.NotNil(t, cfg.logger)
	})
}

func TestHasCacheMagic(t *testing.T) {
	dir := t.TempDir()

	cachePath := filepath.Join(dir, "a"+CacheSuffix)
	require.NoError(t, weight.WriteFile(newTestFile(t), cachePath))

	other := filepath.Join(dir, "b.nc")
	require.NoError(t, os.WriteFile(other, []byte("CDF\x01whatever"), 0o644))

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	ok, err := hasCacheMagic(cachePath)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = hasCacheMagic(other)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = hasCacheMagic(empty)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWriteAdvisoryCache(t *testing.T) {
	t.Run("WritesDecodableCache", func(t *testing.T) {
		want := newTestFile(t)
		dst := filepath.Join(t.TempDir(), "weights.nc"+CacheSuffix)

		cfg, err := newConfig(WithLogger(discardLogger()))
		require.NoError(t, err)
		writeAdvisoryCache(want, dst, cfg)

		got, err := OpenCache(dst)
		require.NoError(t, err)
		require.Equal(t, want.Metadata(), got.Metadata())
		require.Equal(t, want.Regions(), got.Regions())
	})

	t.Run("FailureIsNotFatal", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "no", "such", "dir", "weights.nwt")

		cfg, err := newConfig(WithLogger(discardLogger()))
		require.NoError(t, err)

		// Must not panic and must not create anything.
		writeAdvisoryCache(newTestFile(t), dst, cfg)
		require.NoFileExists(t, dst)
	})
}

func TestCachePath(t *testing.T) {
	require.Equal(t, "weights.nc"+CacheSuffix, cachePath("weights.nc"))

	// A dense source named like a cache still maps to a distinct
	// destination; the conversion must never clobber its input.
	require.Equal(t, "weights"+CacheSuffix+CacheSuffix, cachePath("weights"+CacheSuffix))
}

func TestConvertWeightFile_DerivedDestination(t *testing.T) {
	// Conversion of a source that is not NetCDF fails before any write.
	dir := t.TempDir()
	src := filepath.Join(dir, "weights.nc")
	require.NoError(t, os.WriteFile(src, []byte("bogus"), 0o644))

	_, err := ConvertWeightFile(src, "")
	require.Error(t, err)
	require.NoFileExists(t, src+CacheSuffix)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
