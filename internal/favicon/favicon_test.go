package favicon_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nlohse/stash/internal/favicon"
)

func TestDerivedURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain host", "https://github.com/user/repo", "https://icons.duckduckgo.com/ip3/github.com.ico"},
		{"www stripped", "https://www.example.com/page", "https://icons.duckduckgo.com/ip3/example.com.ico"},
		{"uppercase host", "https://EXAMPLE.com", "https://icons.duckduckgo.com/ip3/example.com.ico"},
		{"unparseable", "::not a url::", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := favicon.DerivedURL(tt.url); got != tt.want {
				t.Errorf("DerivedURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestFetcher_IconLinkInPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><link rel="icon" href="/static/icon.png"></head></html>`)
	})
	mux.HandleFunc("/static/icon.png", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "png-bytes")
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	got, err := favicon.NewFetcher().Fetch(ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "png-bytes" {
		t.Errorf("expected icon from the page link, got %q", got)
	}
}

func TestFetcher_FallsBackToRootIcon(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>No icon link</title></head></html>`)
	})
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ico-bytes")
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	got, err := favicon.NewFetcher().Fetch(ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "ico-bytes" {
		t.Errorf("expected /favicon.ico fallback, got %q", got)
	}
}

func TestFetcher_RemembersFailedHosts(t *testing.T) {
	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer ts.Close()

	f := favicon.NewFetcher()
	if _, err := f.Fetch(ts.URL); err == nil {
		t.Fatal("expected an error for a host without an icon")
	}

	before := hits.Load()
	if _, err := f.Fetch(ts.URL); err == nil {
		t.Fatal("expected the memoized failure to be reported again")
	}
	if hits.Load() != before {
		t.Errorf("expected no further requests to a failed host, got %d extra", hits.Load()-before)
	}
}
