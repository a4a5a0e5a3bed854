package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientGetSendsHeaders(t *testing.T) {
	var gotAccept, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get(HeaderRequestID)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"Accept": "application/json"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if string(resp.Body()) != "short and stout" {
		t.Fatalf("unexpected body %q", resp.Body())
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept header not forwarded, got %q", gotAccept)
	}
	if gotRequestID == "" {
		t.Fatalf("expected %s header to be generated", HeaderRequestID)
	}
}

func TestRestyClientKeepsCallerRequestID(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(HeaderRequestID)
	}))
	defer srv.Close()

	client := NewRestyClient(0)
	if _, err := client.Get(context.Background(), srv.URL, map[string]string{HeaderRequestID: "fixed-id"}); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "fixed-id" {
		t.Fatalf("request id overwritten, got %q", got)
	}
}

func TestRestyClientPostEncodesJSON(t *testing.T) {
	type payload struct {
		Name        string `json:"name"`
		CountryCode string `json:"country_code"`
	}

	var received payload
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		contentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &received); err != nil {
			t.Errorf("decode body %q: %v", raw, err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewRestyClient(time.Second)
	resp, err := client.Post(context.Background(), srv.URL, payload{Name: "Widget", CountryCode: "BR"}, nil)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if contentType != "application/json" {
		t.Fatalf("unexpected content type %q", contentType)
	}
	if received.Name != "Widget" || received.CountryCode != "BR" {
		t.Fatalf("unexpected payload %+v", received)
	}
}

func TestRestyClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := NewRestyClient(time.Second).Get(context.Background(), url, nil); err == nil {
		t.Fatalf("expected error for closed server")
	}
}
