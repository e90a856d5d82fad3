package llm_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"relnotes-faq/internal/llm"
)

func TestIAMTokenSource_CachesToken(t *testing.T) {
	var exchanges atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchanges.Add(1)

		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "urn:ibm:params:oauth:grant-type:apikey" {
			t.Errorf("grant_type = %q", got)
		}
		if got := r.Form.Get("apikey"); got != "secret-key" {
			t.Errorf("apikey = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","expires_in":3600}`))
	}))
	defer server.Close()

	source := llm.NewIAMTokenSource(server.URL, "secret-key")

	for i := 0; i < 3; i++ {
		token, err := source.Token()
		if err != nil {
			t.Fatalf("Token() #%d error = %v", i+1, err)
		}
		if token.AccessToken != "tok-123" {
			t.Errorf("AccessToken = %q", token.AccessToken)
		}
	}

	// One exchange serves all three calls until expiry.
	if got := exchanges.Load(); got != 1 {
		t.Errorf("token exchanges = %d, want 1", got)
	}
}

func TestIAMTokenSource_ExchangeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessage":"invalid apikey"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	source := llm.NewIAMTokenSource(server.URL, "bad-key")
	if _, err := source.Token(); err == nil {
		t.Fatal("Token() error = nil, want exchange failure")
	}
}

func TestIAMTokenSource_EmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"expires_in":3600}`))
	}))
	defer server.Close()

	source := llm.NewIAMTokenSource(server.URL, "key")
	if _, err := source.Token(); err == nil {
		t.Fatal("Token() error = nil, want empty token failure")
	}
}
