package app

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/docparser/internal/config"
	"github.com/markdave123-py/docparser/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		LogLevel:       "error",
		FailurePolicy:  "collect-all",
		MaxUploadBytes: 1 << 20,
		RequestTimeout: 30 * time.Second,
		OCRLanguages:   "eng",
		CORSOrigins:    []string{"http://localhost:5173"},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	a, err := NewApp(cfg, logger)
	require.NoError(t, err)
	srv := httptest.NewServer(a.Server.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postFiles(t *testing.T, url, token string, files map[string][]byte, order ...string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, name := range order {
		w, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = w.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestServerParse(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp := postFiles(t, srv.URL+"/parse", "", map[string][]byte{
		"a.docx": testutil.DOCX(t, "from word"),
		"b.txt":  []byte("plain text content"),
	}, "a.docx", "b.txt")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "from word")
	assert.Contains(t, body, `"plain text content"`)
}

func TestServerParseUnknownIs400(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp := postFiles(t, srv.URL+"/parse", "", map[string][]byte{
		"blob.bin": []byte("\x00\x01\x02\xff\xfe"),
	}, "blob.bin")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Invalid format: Could not determine file type."}`, readBody(t, resp))
}

func TestServerParseCorruptedIs500(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp := postFiles(t, srv.URL+"/parse", "", map[string][]byte{
		"broken.docx": testutil.TruncateCentralDirectory(t, testutil.DOCX(t, "x")),
	}, "broken.docx")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Parse error")
}

func TestServerParseDeadlineIs504(t *testing.T) {
	cfg := testConfig()
	cfg.RequestTimeout = time.Nanosecond
	srv := newTestServer(t, cfg)

	resp := postFiles(t, srv.URL+"/parse", "", map[string][]byte{"a.txt": []byte("hi")}, "a.txt")

	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "deadline exceeded")
}

func TestServerHealthAndStatic(t *testing.T) {
	cfg := testConfig()
	srv := newTestServer(t, cfg)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cfg = testConfig()
	cfg.EnableFileServing = true
	srv = newTestServer(t, cfg)

	resp, err = http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Document Parser")
}

func TestServerParseRequiresTokenWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "s3cret"
	srv := newTestServer(t, cfg)
	files := map[string][]byte{"a.txt": []byte("hi")}

	resp := postFiles(t, srv.URL+"/parse", "", files, "a.txt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "tester"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	resp = postFiles(t, srv.URL+"/parse", token, files, "a.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"texts":["hi"]}`, readBody(t, resp))
}
