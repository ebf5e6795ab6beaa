package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Клиент без Accept-Encoding получает несжатый ответ
func TestWithGzip_NoAcceptEncoding(t *testing.T) {
	h := WithGzip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain"))
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") == "gzip" {
		t.Fatalf("response must not be compressed")
	}
	if rr.Body.String() != "plain" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

// Клиент с Accept-Encoding: gzip получает сжатый ответ
func TestWithGzip_CompressesResponse(t *testing.T) {
	h := WithGzip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("data", 100)))
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response")
	}
	gr, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("failed to open gzip reader: %v", err)
	}
	defer gr.Close()
	body, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if string(body) != strings.Repeat("data", 100) {
		t.Fatalf("decompressed body mismatch")
	}
}
