package transforms

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clearText = "This is the test string used for testing"

func decodeAndDecompress(t *testing.T, result any, newReader func(io.Reader) (io.ReadCloser, error)) string {
	t.Helper()

	compressed, err := base64.StdEncoding.DecodeString(string(result.([]byte)))
	require.NoError(t, err)

	reader, err := newReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	return string(data)
}

func TestCompressWithGZIP(t *testing.T) {
	ok, result := NewCompression().CompressWithGZIP(newTestContext(t), clearText)
	require.True(t, ok)

	got := decodeAndDecompress(t, result, func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) })
	assert.Equal(t, clearText, got)
}

func TestCompressWithZLIB(t *testing.T) {
	ok, result := NewCompression().CompressWithZLIB(newTestContext(t), []byte(clearText))
	require.True(t, ok)

	got := decodeAndDecompress(t, result, zlib.NewReader)
	assert.Equal(t, clearText, got)
}

func TestCompress_ReusesWriters(t *testing.T) {
	compression := NewCompression()
	for range 3 {
		ok, result := compression.CompressWithGZIP(newTestContext(t), clearText)
		require.True(t, ok)
		got := decodeAndDecompress(t, result, func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) })
		assert.Equal(t, clearText, got)
	}
}

func TestCompress_NoData(t *testing.T) {
	ok, result := NewCompression().CompressWithZLIB(newTestContext(t), nil)
	assert.False(t, ok)
	assert.ErrorIs(t, result.(error), ErrNoData)
}
