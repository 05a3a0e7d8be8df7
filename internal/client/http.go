package client

import (
	"compress/gzip"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	timeout   = 30 * time.Second
	userAgent = "salarydash/1.0 (+https://github.com/fr4nk3nst1ner/salarydash)"
)

// CreateHTTPClient creates the client used to fetch remote datasets, routed
// through proxyURL when it is set and parses
func CreateHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  true,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   true,
	}

	if proxyURL != "" {
		if proxy, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(proxy)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// Headers returns the request headers sent with every dataset request
func Headers() http.Header {
	headers := http.Header{}
	headers.Set("User-Agent", userAgent)
	headers.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")
	headers.Set("Accept-Encoding", "gzip")
	return headers
}

// ResponseBody returns a reader over the response body, transparently
// decompressing gzip. Closing it closes the underlying body.
func ResponseBody(resp *http.Response) (io.ReadCloser, error) {
	if resp.Header.Get("Content-Encoding") != "gzip" {
		return resp.Body, nil
	}

	reader, err := gzip.NewReader(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return &gzipBody{Reader: reader, body: resp.Body}, nil
}

type gzipBody struct {
	*gzip.Reader
	body io.Closer
}

func (g *gzipBody) Close() error {
	g.Reader.Close()
	return g.body.Close()
}
