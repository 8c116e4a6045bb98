package roster

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
)

const fetchTimeout = 30 * time.Second

// Source fetches the roster CSV export over HTTP
type Source struct {
	url    string
	client *http.Client
}

// NewSource creates a roster source for the given CSV export URL
func NewSource(url string) interfaces.RosterSource {
	return &Source{
		url: url,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// Fetch retrieves the raw roster text. Every call hits the origin; the
// dashboard must always see the current spreadsheet contents.
func (s *Source) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build roster request",
			goerr.V("url", s.url),
			goerr.T(model.ErrTagUpstream))
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch roster",
			goerr.V("url", s.url),
			goerr.T(model.ErrTagUpstream))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", goerr.New("roster source returned non-success status",
			goerr.V("url", s.url),
			goerr.V("status", resp.Status),
			goerr.T(model.ErrTagUpstream))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read roster body",
			goerr.T(model.ErrTagUpstream))
	}

	return string(body), nil
}
