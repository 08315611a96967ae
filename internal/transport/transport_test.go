package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/retroharness/vicegrip/pkg/types"
)

func TestHTTPDoer_Post(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"ping":true}` {
			t.Errorf("body = %s", body)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"pong"}`))
	}))
	defer srv.Close()

	d := NewHTTPDoer()
	status, body, err := d.Post(context.Background(), srv.URL, []byte(`{"ping":true}`), time.Second)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if string(body) != `{"jsonrpc":"2.0","id":1,"result":"pong"}` {
		t.Errorf("body = %s", body)
	}
}

func TestHTTPDoer_ConnectionRefused(t *testing.T) {
	t.Parallel()

	d := NewHTTPDoer()
	// Reserved port on localhost with nothing listening.
	_, _, err := d.Post(context.Background(), "http://127.0.0.1:1", nil, time.Second)

	var te *types.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v (%T), want *types.TransportError", err, err)
	}
	if te.Timeout {
		t.Errorf("Timeout = true, want false for connection refused")
	}
}

func TestHTTPDoer_Timeout(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	d := NewHTTPDoer()
	start := time.Now()
	_, _, err := d.Post(context.Background(), srv.URL, nil, 50*time.Millisecond)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Post took %v, timeout not enforced", elapsed)
	}

	var te *types.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v (%T), want *types.TransportError", err, err)
	}
	if !te.Timeout {
		t.Errorf("Timeout = false, want true for expired deadline")
	}
}
