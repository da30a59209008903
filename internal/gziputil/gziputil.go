// Package gziputil provides pooled gzip helpers for revision payloads and
// request bodies.
package gziputil

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

var writerPool = sync.Pool{
	New: func() any { return gzip.NewWriter(nil) },
}

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Documents are editor buffers, not archives; anything past this limit is a
// decompression bomb, not a spec.
const maxDecompressedSize = 64 * 1024 * 1024 // 64 MB

// Compress gzip-compresses data using pooled writers and buffers.
func Compress(data []byte) ([]byte, error) {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Grow(len(data) / 4)

	gw := writerPool.Get().(*gzip.Writer)
	gw.Reset(buf)

	release := func() {
		gw.Reset(nil)
		writerPool.Put(gw)
		bufPool.Put(buf)
	}

	if _, err := gw.Write(data); err != nil {
		release()
		return nil, err
	}
	if err := gw.Close(); err != nil {
		release()
		return nil, err
	}

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	release()
	return result, nil
}

// Decompress inflates gzip data, enforcing the decompressed size limit.
func Decompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	limit := int64(maxDecompressedSize)
	limitReader := io.LimitReader(gr, limit+1)

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Grow(len(data) * 4)
	defer bufPool.Put(buf)

	if _, err := io.Copy(buf, limitReader); err != nil {
		return nil, err
	}
	if int64(buf.Len()) > limit {
		return nil, errors.New("decompressed document exceeds maximum size of 64MB")
	}

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// IsGzipped reports whether data starts with the gzip magic bytes.
func IsGzipped(data []byte) bool {
	return len(data) > 2 && data[0] == 0x1f && data[1] == 0x8b
}
