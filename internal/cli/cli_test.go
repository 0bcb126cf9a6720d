package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/pinterest-downloader/internal/pkg/apperror"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_Valid(t *testing.T) {
	out, err := run(t, "check", "https://pin.it/abc123")

	require.NoError(t, err)
	assert.Contains(t, out, "kind: short_link")
	assert.Contains(t, out, "id:   abc123")
}

func TestCheck_Invalid(t *testing.T) {
	_, err := run(t, "check", "https://example.com/pin/1")

	assert.True(t, apperror.IsBadRequest(err))
}

func TestCheck_RequiresArgument(t *testing.T) {
	_, err := run(t, "check")

	assert.Error(t, err)
}

func TestFetch_PrintsResult(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"result":{"title":"T","media":{"url":"https://i.pinimg.com/originals/a.png"}}}`))
	}))
	defer srv.Close()

	out, err := run(t, "fetch", "https://pin.it/abc123", "--base-url", srv.URL, "--compact")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "https://i.pinimg.com/originals/a.png", result["mediaUrl"])
	assert.Equal(t, false, result["isVideo"])
	assert.Equal(t, "png", result["extension"])
	assert.Equal(t, "https://pin.it/abc123", result["sourceUrl"])
}

func TestFetch_ProductionEnvWithoutCORS(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"result":{"media":{"url":"https://x/y.mp4"}}}`))
	}))
	defer srv.Close()

	out, err := run(t, "fetch", "https://pin.it/abc123", "--base-url", srv.URL, "--compact")
	require.NoError(t, err)
	assert.Contains(t, out, `"isVideo":true`)
}

func TestFetch_UpstreamNotFound(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := run(t, "fetch", "https://pin.it/abc123", "--base-url", srv.URL)

	assert.True(t, apperror.IsNotFound(err))
}

func TestRules(t *testing.T) {
	out, err := run(t, "rules")
	require.NoError(t, err)

	var rules map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	assert.Contains(t, rules["shortLinkHosts"], "pin.it")
}
