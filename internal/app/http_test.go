package app

import (
	"net/http"
	"reflect"
	"testing"
)

func TestNewHighThroughputHTTPClient_Config(t *testing.T) {
	c := newHighThroughputHTTPClient(true)
	if c.Timeout == 0 {
		t.Fatalf("expected non-zero timeout")
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected http.Transport")
	}
	if tr.MaxIdleConnsPerHost < 100 {
		t.Fatalf("expected large MaxIdleConnsPerHost, got %d", tr.MaxIdleConnsPerHost)
	}
	// Ensure we didn't return the default client's transport
	if reflect.ValueOf(http.DefaultTransport).Pointer() == reflect.ValueOf(tr).Pointer() {
		t.Fatalf("transport should not be default")
	}
}

func TestNewHighThroughputHTTPClient_SSLVerify(t *testing.T) {
	tests := []struct {
		name      string
		sslVerify bool
		wantSkip  bool
	}{
		{"verification enabled", true, false},
		{"verification disabled", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ok := newHighThroughputHTTPClient(tt.sslVerify).Transport.(*http.Transport)
			if !ok {
				t.Fatalf("expected *http.Transport")
			}
			var skip bool
			if tr.TLSClientConfig != nil {
				skip = tr.TLSClientConfig.InsecureSkipVerify
			}
			if skip != tt.wantSkip {
				t.Fatalf("InsecureSkipVerify=%v, want %v", skip, tt.wantSkip)
			}
		})
	}
}

func TestDefaults_VerifyTLS(t *testing.T) {
	if !Defaults().SSLVerify {
		t.Fatalf("TLS verification must be on by default")
	}
}
