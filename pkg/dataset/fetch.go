// Package dataset fetches and parses the two course datasets: the adult
// census extract (comma-separated, no header) and the SMS spam collection
// (a zip archive holding one tab-separated file). Downloads go through a
// Client so callers control the HTTP client and logger; local-file variants
// exist for offline runs and tests.
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/go-gota/gota/dataframe"
)

// Default mirror locations for the course data.
const (
	AdultURL = "https://archive.ics.uci.edu/ml/machine-learning-databases/adult/adult.data"
	SpamURL  = "https://archive.ics.uci.edu/ml/machine-learning-databases/00228/smsspamcollection.zip"
)

// Client downloads course datasets.
type Client struct {
	http *http.Client
	log  *zap.Logger
}

// NewClient returns a Client using httpc (nil means http.DefaultClient) and
// logger (nil means no logging).
func NewClient(httpc *http.Client, logger *zap.Logger) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{http: httpc, log: logger}
}

// FetchAdult downloads the census file and parses it into a raw frame.
func (c *Client) FetchAdult(ctx context.Context, url string) (dataframe.DataFrame, error) {
	if url == "" {
		url = AdultURL
	}
	c.log.Info("downloading census data", zap.String("url", url))
	body, err := c.get(ctx, url)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer body.Close()
	return ReadAdult(body)
}

// FetchSpam downloads the spam zip archive into a temporary file, parses the
// collection inside, and removes the temporary file on every path out.
func (c *Client) FetchSpam(ctx context.Context, url string) (labels, texts []string, err error) {
	if url == "" {
		url = SpamURL
	}
	c.log.Info("downloading spam archive", zap.String("url", url))
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	defer body.Close()

	tmp, err := os.CreateTemp("", "smsspam-*.zip")
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: creating temp archive: %w", err)
	}
	defer func() {
		tmp.Close()
		if rmErr := os.Remove(tmp.Name()); rmErr != nil {
			c.log.Warn("could not remove temp archive",
				zap.String("path", tmp.Name()), zap.Error(rmErr))
		}
	}()

	if _, err = io.Copy(tmp, body); err != nil {
		return nil, nil, fmt.Errorf("dataset: saving archive: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return nil, nil, fmt.Errorf("dataset: closing archive: %w", err)
	}
	return ReadSpamArchive(tmp.Name())
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dataset: building request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataset: fetching %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("dataset: fetching %s: unexpected status %s", url, resp.Status)
	}
	return resp.Body, nil
}
