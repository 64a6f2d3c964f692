package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Writers and readers are pooled; a fresh gzip state per request is
// measurably expensive under load.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGZip transparently decompresses gzip request bodies and compresses
// responses for clients that advertise gzip in Accept-Encoding.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		wantsGzip := strings.Contains(req.Header.Get("Accept-Encoding"), "gzip")
		sentGzip := strings.Contains(req.Header.Get("Content-Encoding"), "gzip")

		if sentGzip && req.Body != nil {
			reader := gzipReaderPool.Get().(*gzip.Reader)
			if err := reader.Reset(req.Body); err != nil {
				gzipReaderPool.Put(reader)
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}

			req.Body = &pooledReadCloser{
				Reader: reader,
				onClose: func() {
					reader.Close()
					gzipReaderPool.Put(reader)
				},
			}
			req.Header.Del("Content-Encoding")
		}

		if !wantsGzip {
			next.ServeHTTP(w, req)
			return
		}

		writer := gzipWriterPool.Get().(*gzip.Writer)
		writer.Reset(w)

		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, gzipWriter: writer}, req)

		writer.Close()
		gzipWriterPool.Put(writer)
	})
}

// pooledReadCloser runs onClose when the body is closed, returning the
// underlying gzip reader to its pool.
type pooledReadCloser struct {
	io.Reader
	onClose func()
}

func (p *pooledReadCloser) Close() error {
	if p.onClose != nil {
		p.onClose()
	}
	return nil
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzipWriter.Write(data)
}
