package docs_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhigbe/globuschat/pkg/docs"
)

func TestNormalize(t *testing.T) {
	in := "Savings Accounts\r\nEarn interest.\r\n\r\n\r\n\r\nLoans\nFlexible terms.\n\n"
	want := "Savings Accounts\nEarn interest.\n\nLoans\nFlexible terms."

	assert.Equal(t, want, docs.Normalize(in))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.txt")
	require.NoError(t, os.WriteFile(path, []byte("Debit Cards\r\nContactless.\n\n\n\n"), 0o644))

	text, err := docs.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Debit Cards\nContactless.", text)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := docs.LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLoadURL_ExtractsContentText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<script>var tracking = true;</script>
			<style>p { color: red; }</style>
		</head><body>
			<h2>Savings Accounts</h2>
			<p>Earn 4.1% per annum on Classic Savings.</p>
			<ul><li>No monthly fees</li></ul>
		</body></html>`))
	}))
	defer srv.Close()

	text, err := docs.LoadURL(srv.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "Savings Accounts")
	assert.Contains(t, text, "Earn 4.1% per annum on Classic Savings.")
	assert.Contains(t, text, "No monthly fees")
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "color: red")
}

func TestLoadURL_RejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := docs.LoadURL(srv.URL)
	assert.Error(t, err)
}
