package transforms

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/util"
)

var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

var zlibWriterPool = sync.Pool{
	New: func() any {
		return zlib.NewWriter(nil)
	},
}

// resettableWriter is implemented by both gzip.Writer and zlib.Writer.
type resettableWriter interface {
	io.WriteCloser
	Reset(w io.Writer)
}

// Compression compresses pipeline data and base64 encodes the result.
type Compression struct{}

func NewCompression() Compression {
	return Compression{}
}

func (c Compression) CompressWithGZIP(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	return c.compress("CompressWithGZIP", ctx, data, &gzipWriterPool)
}

func (c Compression) CompressWithZLIB(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	return c.compress("CompressWithZLIB", ctx, data, &zlibWriterPool)
}

func (c Compression) compress(function string, ctx interfaces.AppFunctionContext, data any, pool *sync.Pool) (bool, any) {
	if data == nil {
		return false, noDataError(function, ctx)
	}

	ctx.LoggingClient().Debug().Str("pipeline", ctx.PipelineId()).Str("function", function).Msg("compressing data")

	raw, err := util.CoerceType(data)
	if err != nil {
		return false, err
	}

	var buf bytes.Buffer
	writer := pool.Get().(resettableWriter)
	defer pool.Put(writer)

	writer.Reset(&buf)
	if _, err = writer.Write(raw); err != nil {
		return false, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), err)
	}
	if err = writer.Close(); err != nil {
		return false, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), err)
	}

	ctx.SetResponseContentType(models.ContentTypeText)
	return true, []byte(base64.StdEncoding.EncodeToString(buf.Bytes()))
}
