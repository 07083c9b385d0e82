package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// InfoPageService fetches the backend's static informational pages (public
// offer, refund policy) and flattens their HTML into message-friendly text.
type InfoPageService struct {
	httpClient *http.Client
}

func NewInfoPageService() *InfoPageService {
	return &InfoPageService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *InfoPageService) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}
	return RenderHTML(string(body))
}

// RenderHTML extracts the heading and paragraph text from an HTML document,
// dropping markup, scripts and styles.
func RenderHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	doc.Find("script, style, nav, footer").Remove()

	var parts []string
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		switch goquery.NodeName(sel) {
		case "h1", "h2", "h3":
			parts = append(parts, "*"+text+"*")
		case "li":
			parts = append(parts, "• "+text)
		default:
			parts = append(parts, text)
		}
	})

	if len(parts) == 0 {
		text := strings.TrimSpace(doc.Text())
		if text == "" {
			return "", fmt.Errorf("page has no readable content")
		}
		return text, nil
	}
	return strings.Join(parts, "\n\n"), nil
}
