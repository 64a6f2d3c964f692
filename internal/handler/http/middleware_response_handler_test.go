// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_WriteHeader_FirstCallWins(t *testing.T) {
	tests := []struct {
		name       string
		codes      []int
		wantStatus int
	}{
		{
			name:       "single call",
			codes:      []int{http.StatusCreated},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "second call ignored",
			codes:      []int{http.StatusUnauthorized, http.StatusOK},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "third call ignored too",
			codes:      []int{http.StatusOK, http.StatusBadRequest, http.StatusNotFound},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rr}

			for _, code := range tt.codes {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.wantStatus, w.status)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.True(t, w.wroteHeader)
		})
	}
}

func TestResponseWriter_Write_ImplicitOK(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	n, err := w.Write([]byte(`{"access_token":"a.b.c"}`))

	require.NoError(t, err)
	assert.Equal(t, 24, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestResponseWriter_Write_KeepsExplicitStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusConflict)
	_, err := w.Write([]byte("login already taken"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, w.status)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestResponseWriter_Write_AccumulatesSize(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	for _, chunk := range []string{"chunk one, ", "chunk two, ", "chunk three"} {
		_, err := w.Write([]byte(chunk))
		require.NoError(t, err)
	}

	assert.Equal(t, 33, w.size)
	assert.Equal(t, 33, rr.Body.Len())
}

func TestResponseWriter_Write_EmptySlice(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	n, err := w.Write(nil)

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, w.size)
	// even a zero-length write commits the implicit 200
	assert.Equal(t, http.StatusOK, w.status)
}

func TestResponseWriter_ZeroValueBeforeUse(t *testing.T) {
	w := &responseWriter{ResponseWriter: httptest.NewRecorder()}

	assert.Equal(t, 0, w.status)
	assert.Equal(t, 0, w.size)
	assert.False(t, w.wroteHeader)
}

func TestResponseWriter_HeadersReachUnderlyingWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.Header().Set("X-Trace-ID", "abc-123")
	w.WriteHeader(http.StatusNoContent)

	assert.Equal(t, "abc-123", rr.Header().Get("X-Trace-ID"))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
