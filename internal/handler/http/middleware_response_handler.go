// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package http

import "net/http"

// responseWriter decorates [http.ResponseWriter] to record the status code
// and the number of body bytes written, so withLogging can report them after
// the downstream handler returns. Nothing is buffered.
//
// WriteHeader is forwarded to the underlying writer exactly once; later
// calls are ignored, per the [http.ResponseWriter] contract.
type responseWriter struct {
	http.ResponseWriter

	// status is recorded on the first WriteHeader call (explicit or
	// implicit); zero before that.
	status int

	wroteHeader bool

	// size accumulates across all Write calls.
	size int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards b to the underlying writer, implicitly writing a 200
// header first when none has been written, as the standard library does.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
