package wordbank

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

// HTTPProvider fetches words from an endpoint that answers
// GET <url>?number=N with a JSON array of strings.
type HTTPProvider struct {
	URL     string
	Timeout time.Duration
}

// NewHTTPProvider creates a provider for the given endpoint.
func NewHTTPProvider(endpoint string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{URL: endpoint, Timeout: timeout}
}

// FetchWords requests count words. The shorter of the provider timeout and
// the context deadline bounds the request.
func (p *HTTPProvider) FetchWords(ctx context.Context, count int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u, err := url.Parse(p.URL)
	if err != nil {
		return nil, fmt.Errorf("wordbank: bad provider url %q: %w", p.URL, err)
	}
	q := u.Query()
	q.Set("number", strconv.Itoa(count))
	u.RawQuery = q.Encode()

	timeout := p.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return nil, context.DeadlineExceeded
		}
		if timeout <= 0 || left < timeout {
			timeout = left
		}
	}

	agent := fiber.Get(u.String()).JSONDecoder(json.Unmarshal)
	if timeout > 0 {
		agent = agent.Timeout(timeout)
	}

	var words []string
	code, _, errs := agent.Struct(&words)
	if code != 0 && code != fiber.StatusOK {
		return nil, fmt.Errorf("wordbank: provider answered %d", code)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("wordbank: fetch words: %w", errs[0])
	}
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}
