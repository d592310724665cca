package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/ryanuber/go-glob"
)

type httpGetFunc func(ctx context.Context, url string) (resp *http.Response, err error)

type Config struct {
	// AllowedDomains is a list of glob patterns matched against the
	// hostname of every fetched URL. Empty list allows all domains.
	AllowedDomains []string
}

type HTTPFetcher struct {
	config Config
	getter httpGetFunc
}

var _ Fetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher(config Config) Fetcher {
	getFunc := func(ctx context.Context, url string) (resp *http.Response, err error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		return http.DefaultClient.Do(req)
	}

	return &HTTPFetcher{config, getFunc}
}

// StatusError is returned when the remote location responds
// with a non-200 status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response returned status code %d", e.Code)
}

func (f *HTTPFetcher) Fetch(ctx context.Context, sourceURL string) ([]byte, error) {
	if !f.isAllowedSourceDomain(sourceURL) {
		return nil, ErrDomainNotAllowed
	}

	response, err := f.getter(ctx, sourceURL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, ErrFetchTimeout
		}

		return nil, ErrUnreachable
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, &StatusError{response.StatusCode}
	}

	data, err := ioutil.ReadAll(response.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, ErrFetchTimeout
		}

		return nil, ErrUnreachable
	}

	return data, nil
}

func (f *HTTPFetcher) isAllowedSourceDomain(sourceURL string) bool {
	if len(f.config.AllowedDomains) == 0 {
		return true
	}

	parsedURL, err := url.Parse(sourceURL)
	if err != nil {
		return false
	}

	sourceDomain := parsedURL.Hostname()
	for _, allowedDomain := range f.config.AllowedDomains {
		if glob.Glob(allowedDomain, sourceDomain) {
			return true
		}
	}

	return false
}

var (
	ErrUnreachable      = errors.New("remote location is unreachable")
	ErrFetchTimeout     = errors.New("fetch timed out")
	ErrDomainNotAllowed = errors.New("source image domain not allowed")
)
