package app

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// newHighThroughputHTTPClient returns the HTTP client used for the model
// backend. Timeouts are kept reasonable to avoid hangs; the per-request bound
// comes from the caller's context. sslVerify=false accepts self-signed
// certificates on local inference servers.
func newHighThroughputHTTPClient(sslVerify bool) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        256,
		MaxIdleConnsPerHost: 128, // one backend, many concurrent requests
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		// Generation can take minutes before the first byte.
		ResponseHeaderTimeout: 4 * time.Minute,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if !sslVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   5 * time.Minute,
	}
}
