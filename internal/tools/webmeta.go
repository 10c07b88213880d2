package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/jsonschema-go/jsonschema"
)

// pageMeta is the success payload of the webmeta tool. Thumbnail and
// Description are null when the page has no matching meta tag.
type pageMeta struct {
	Title       string  `json:"title"`
	Thumbnail   *string `json:"thumbnail"`
	Description *string `json:"description"`
}

// WebMetaTool fetches a web page and extracts its title, preview image and
// description. All failures degrade to {"error": ...} payloads so the model
// can keep generating; this tool never returns a Go error.
type WebMetaTool struct {
	BaseTool
	client *http.Client
}

func NewWebMetaTool(timeout time.Duration) *WebMetaTool {
	return &WebMetaTool{
		client: &http.Client{Timeout: timeout},
	}
}

func (t *WebMetaTool) GetName() string {
	return "analyze_web_page"
}

func (t *WebMetaTool) GetSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title:       "analyze_web_page",
		Description: "Fetch a web page and extract its title, preview image and description",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			"url": {
				Type:        "string",
				Description: "The URL of the page to analyze",
			},
		},
		Required: []string{"url"},
	}
}

// normalizeURL keeps http/https URLs as-is and assumes https for anything
// else. Input that does not parse to a URL with a host is rejected.
func normalizeURL(raw string) (string, error) {
	candidate := raw
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		candidate = "https://" + raw
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("not a parseable url: %q", raw)
	}
	return u.String(), nil
}

func (t *WebMetaTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	raw, _ := args["url"].(string)

	target, err := normalizeURL(raw)
	if err != nil {
		return errorPayload(fmt.Sprintf("Invalid URL provided: %s", raw)), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errorPayload(fmt.Sprintf("Invalid URL provided: %s", raw)), nil
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return errorPayload(fmt.Sprintf("Failed to fetch the web page: %v", err)), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorPayload(fmt.Sprintf("Failed to fetch the web page: %v", err)), nil
	}
	if !utf8.Valid(body) {
		return errorPayload("Failed to decode HTML content."), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return errorPayload("Failed to parse HTML content."), nil
	}

	meta := pageMeta{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if v, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		meta.Thumbnail = &v
	}
	if v, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		meta.Description = &v
	}

	payload, err := json.Marshal(meta)
	if err != nil {
		return errorPayload("Failed to encode page metadata."), nil
	}
	return string(payload), nil
}
