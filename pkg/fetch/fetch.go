// Package fetch downloads release assets over HTTP and resolves the
// injector's upstream release versions.
package fetch

import (
	"io"
	"net/http"
	"os"

	"github.com/cozysoft/reshader/internal/version"
	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/logging"
)

// Client wraps an http.Client with the identifying user-agent every
// request carries.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a Client with the default user-agent
func NewClient() *Client {
	return &Client{
		http:      &http.Client{},
		userAgent: "reshader/" + version.Version,
	}
}

// NewClientWithHTTP creates a Client over a caller-supplied http.Client
func NewClientWithHTTP(hc *http.Client) *Client {
	c := NewClient()
	c.http = hc
	return c
}

// get issues a GET for url with the user-agent header set. Non-2xx
// statuses are reported as download errors; the body is closed by the
// caller.
func (c *Client) get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownload, "failed to build request for %s", url)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownload, "failed to download %s", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, errors.Newf(errors.ErrDownload, "failed to download %s: HTTP %d", url, resp.StatusCode).
			WithDetail("status", resp.StatusCode)
	}
	return resp, nil
}

// Download performs a streaming GET of url into dest, creating or
// truncating the file. Failure is terminal for the current operation;
// there are no retries.
func (c *Client) Download(url, dest string) error {
	log := logging.GetLogger("fetch")
	log.Debug().Str("url", url).Str("dest", dest).Msg("Downloading")

	resp, err := c.get(url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to create %s", dest)
	}
	defer func() { _ = out.Close() }()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDownload, "failed to download %s", url)
	}

	log.Debug().Int64("bytes", written).Str("dest", dest).Msg("Download complete")
	return nil
}
