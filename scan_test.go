package nim

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/next-dev/nim/bitmap"
	"github.com/next-dev/nim/nip"
	"github.com/next-dev/nim/rgb333"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// rampPalette returns a palette whose entry i is the i'th red level.
func rampPalette(n int) *nip.Palette {
	colors := make([]rgb333.Color, n)
	for i := range colors {
		colors[i] = rgb333.Color{R: uint8(i) & 7}
	}
	return nip.New(colors)
}

// rampImage holds the exact red levels for entries 3 and 7, so it
// converts to the indices 3 and 7.
func rampImage() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.SetNRGBA(0, 0, color.NRGBA{R: rgb333.Levels3[3], A: 0xff})
	m.SetNRGBA(1, 0, color.NRGBA{R: rgb333.Levels3[7], A: 0xff})
	return m
}

func writePNG(t *testing.T, path string, m image.Image) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, m))
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sprite.png")
	writePNG(t, src, rampImage())

	var buf bytes.Buffer
	conv := New(rampPalette(8), bitmap.Depth8, nil, log.New(&buf, "", 0))
	require.NoError(t, conv.ConvertFile(src))

	b, err := os.ReadFile(filepath.Join(dir, "sprite.nim"))
	require.NoError(t, err)
	assert.Equal(t, []byte("NIM0\x02\x00\x01\x00\x03\x07"), b)
	assert.Contains(t, buf.String(), "Converted")
}

func TestConvertFileDepth4(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sprite.png")
	writePNG(t, src, rampImage())

	conv := New(rampPalette(8), bitmap.Depth4, nil, discardLogger())
	require.NoError(t, conv.ConvertFile(src))

	b, err := os.ReadFile(filepath.Join(dir, "sprite.nim"))
	require.NoError(t, err)
	assert.Equal(t, []byte("NIM0\x02\x00\x01\x00\x37"), b)
}

func TestConvertFileResize(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dot.png")

	m := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	m.SetNRGBA(0, 0, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	writePNG(t, src, m)

	conv := New(nip.New([]rgb333.Color{{}, {R: 7, G: 7, B: 7}}), bitmap.Depth8, nil, discardLogger())
	conv.Resize(2, 2)
	require.NoError(t, conv.ConvertFile(src))

	b, err := os.ReadFile(filepath.Join(dir, "dot.nim"))
	require.NoError(t, err)
	assert.Equal(t, []byte("NIM0\x02\x00\x02\x00\x01\x01\x01\x01"), b)
}

func TestConvertFileCache(t *testing.T) {
	dir := t.TempDir()

	cache, err := OpenCache(filepath.Join(dir, "nim.db"))
	require.NoError(t, err)
	defer cache.Close()

	src := filepath.Join(dir, "sprite.png")
	dst := filepath.Join(dir, "sprite.nim")
	writePNG(t, src, rampImage())

	conv := New(rampPalette(8), bitmap.Depth8, cache, discardLogger())
	require.NoError(t, conv.ConvertFile(src))

	want, err := os.ReadFile(dst)
	require.NoError(t, err)

	f, err := os.Open(src)
	require.NoError(t, err)
	sha, err := fileSHA1(f)
	f.Close()
	require.NoError(t, err)

	fp, err := paletteFingerprint(conv.palette)
	require.NoError(t, err)

	b, err := cache.get(sha, bitmap.Depth8, fp, "")
	require.NoError(t, err)
	assert.Equal(t, want, b)

	// Corrupt the output, converting again restores it from the cache
	require.NoError(t, os.WriteFile(dst, []byte("junk"), 0644))
	require.NoError(t, conv.ConvertFile(src))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCache(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "nim.db"))
	require.NoError(t, err)
	defer cache.Close()

	b, err := cache.get("ABC", bitmap.Depth8, "FP", "")
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, cache.put("ABC", bitmap.Depth8, "FP", "", []byte{1, 2}))

	b, err = cache.get("ABC", bitmap.Depth8, "FP", "")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	require.NoError(t, cache.put("ABC", bitmap.Depth8, "FP", "", []byte{3}))

	b, err = cache.get("ABC", bitmap.Depth8, "FP", "")
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, b)

	b, err = cache.get("ABC", bitmap.Depth4, "FP", "")
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = cache.get("ABC", bitmap.Depth8, "FP2", "")
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = cache.get("ABC", bitmap.Depth8, "FP", "256x192")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0755))

	writePNG(t, filepath.Join(dir, "a.png"), rampImage())
	writePNG(t, filepath.Join(dir, "sub", "b.png"), rampImage())
	writePNG(t, filepath.Join(dir, ".hidden", "c.png"), rampImage())
	writePNG(t, filepath.Join(dir, ".ignored.png"), rampImage())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	conv := New(rampPalette(8), bitmap.Depth8, nil, discardLogger())
	require.NoError(t, conv.Scan(dir))

	for _, f := range []string{"a.nim", filepath.Join("sub", "b.nim")} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	for _, f := range []string{filepath.Join(".hidden", "c.nim"), ".ignored.nim", "notes.nim"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.True(t, os.IsNotExist(err), f)
	}
}

func TestScanError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("junk"), 0644))

	conv := New(rampPalette(8), bitmap.Depth8, nil, discardLogger())
	assert.Error(t, conv.Scan(dir))
}
