package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newWebMetaTestTool() *WebMetaTool {
	return NewWebMetaTool(5 * time.Second)
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"https kept", "https://example.com/page", "https://example.com/page", false},
		{"http kept", "http://example.com", "http://example.com", false},
		{"bare host prefixed", "example.com", "https://example.com", false},
		{"host with path prefixed", "example.com/a/b", "https://example.com/a/b", false},
		{"garbage rejected", "not a url!!", "", true},
		{"empty rejected", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeURL(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %q", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestWebMetaTool_FullMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<title> Example Page </title>
			<meta property="og:image" content="https://example.com/thumb.png">
			<meta name="description" content="A page about examples">
		</head><body></body></html>`))
	}))
	defer server.Close()

	got, err := newWebMetaTestTool().Execute(context.Background(), map[string]any{"url": server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"title":"Example Page","thumbnail":"https://example.com/thumb.png","description":"A page about examples"}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestWebMetaTool_MissingMeta(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head></head><body>no metadata here</body></html>`))
	}))
	defer server.Close()

	got, err := newWebMetaTestTool().Execute(context.Background(), map[string]any{"url": server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"title":"","thumbnail":null,"description":null}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestWebMetaTool_InvalidURL(t *testing.T) {
	got, err := newWebMetaTestTool().Execute(context.Background(), map[string]any{"url": "not a url!!"})
	if err != nil {
		t.Fatalf("expected error payload instead of Go error, got %v", err)
	}

	want := `{"error":"Invalid URL provided: not a url!!"}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestWebMetaTool_NonUTF8Body(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xff, 0xfe, 0xfd, '<', 'h', 't', 'm', 'l', '>'})
	}))
	defer server.Close()

	got, err := newWebMetaTestTool().Execute(context.Background(), map[string]any{"url": server.URL})
	if err != nil {
		t.Fatalf("expected error payload instead of Go error, got %v", err)
	}

	want := `{"error":"Failed to decode HTML content."}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestWebMetaTool_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	got, err := newWebMetaTestTool().Execute(context.Background(), map[string]any{"url": server.URL})
	if err != nil {
		t.Fatalf("expected error payload instead of Go error, got %v", err)
	}

	if got == "" || got[:9] != `{"error":` {
		t.Errorf("expected error payload, got %s", got)
	}
}
