package client

import (
	"bytes"
	"compress/gzip"
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const body = "salario_limpio_colones,categoria_semantica_final,cluster_salario\n900000,A,0\n"

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestCreateHTTPClient(t *testing.T) {
	c := CreateHTTPClient("")
	assert.Equal(t, timeout, c.Timeout)

	transport, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.True(t, transport.DisableCompression)
	assert.Equal(t, uint16(tls.VersionTLS12), transport.TLSClientConfig.MinVersion)
	assert.False(t, transport.TLSClientConfig.InsecureSkipVerify)
}

func TestCreateHTTPClient_Proxy(t *testing.T) {
	var gotHost string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.URL.Host
		w.Write([]byte(body))
	}))
	defer proxy.Close()

	resp, err := CreateHTTPClient(proxy.URL).Get("http://datasets.example.org/salarios.csv")
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.Equal(t, "datasets.example.org", gotHost)
}

func TestResponseBody_Gzip(t *testing.T) {
	compressed := gzipped(t, body)
	var gotEncoding string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEncoding = r.Header.Get("Accept-Encoding")
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(compressed)
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header = Headers()

	resp, err := CreateHTTPClient("").Do(req)
	require.NoError(t, err)

	rc, err := ResponseBody(resp)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	assert.Equal(t, body, string(data))
	assert.Equal(t, "gzip", gotEncoding)
}

func TestResponseBody_Plain(t *testing.T) {
	resp := &http.Response{Header: http.Header{}, Body: io.NopCloser(bytes.NewBufferString(body))}
	rc, err := ResponseBody(resp)
	require.NoError(t, err)
	assert.Equal(t, resp.Body, rc)
}

func TestResponseBody_CorruptGzip(t *testing.T) {
	resp := &http.Response{
		Header: http.Header{"Content-Encoding": []string{"gzip"}},
		Body:   io.NopCloser(bytes.NewBufferString("not gzip")),
	}
	_, err := ResponseBody(resp)
	assert.Error(t, err)
}
