package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultSourceURL is the metadata endpoint; %s is replaced with YYYY-MM-DD.
const DefaultSourceURL = "https://www.nytimes.com/svc/wordle/v2/%s.json"

// Source fetches the official puzzle metadata for a date.
type Source interface {
	Fetch(ctx context.Context, date string) (CurrentPuzzle, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, date string) (CurrentPuzzle, error)

func (f SourceFunc) Fetch(ctx context.Context, date string) (CurrentPuzzle, error) {
	return f(ctx, date)
}

// HTTPSource fetches metadata over HTTP from a URL template.
type HTTPSource struct {
	URL    string // must contain one %s for the date
	Client *http.Client
}

// NewHTTPSource returns a source for urlTemplate with a bounded client.
func NewHTTPSource(urlTemplate string, timeout time.Duration) *HTTPSource {
	if urlTemplate == "" {
		urlTemplate = DefaultSourceURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{URL: urlTemplate, Client: &http.Client{Timeout: timeout}}
}

// Fetch GETs and decodes the metadata document for date.
func (s *HTTPSource) Fetch(ctx context.Context, date string) (CurrentPuzzle, error) {
	url := s.URL
	if strings.Contains(url, "%s") {
		url = fmt.Sprintf(url, date)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return CurrentPuzzle{}, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.Client.Do(req)
	if err != nil {
		return CurrentPuzzle{}, fmt.Errorf("get %s: %w", date, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return CurrentPuzzle{}, fmt.Errorf("get %s: unexpected status %d", date, res.StatusCode)
	}

	var p CurrentPuzzle
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return CurrentPuzzle{}, fmt.Errorf("decode %s: %w", date, err)
	}
	return p, nil
}
