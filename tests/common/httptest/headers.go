//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertAttachment checks a download response and returns its body.
func AssertAttachment(t *testing.T, w *httptest.ResponseRecorder, contentType, filenamePrefix string) string {
	t.Helper()
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), contentType),
		"content type %q", w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="`+filenamePrefix),
		"content disposition %q", disposition)
	return w.Body.String()
}
