package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/reportgen/reportgen/core"
)

// Register client
func init() {
	_ = register(NewWeb(), "web", "http", "https")
}

const (
	webTimeout = 10 * time.Second

	// requests per second allowed against a single host
	webRateLimit = 5
	webRateBurst = 2

	defaultAPIKeyHeader = "X-API-Key"
	userAgent           = "reportgen"
)

var _ core.Adapter = (*Web)(nil)

// Web fetches a JSON document over HTTP GET.
// Sources pointing at the same host share a rate limiter.
type Web struct {
	client *http.Client

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewWeb() *Web {
	return &Web{
		client:   &http.Client{Timeout: webTimeout},
		limiters: make(map[string]*rate.Limiter),
	}
}

func (w *Web) limiter(host string) *rate.Limiter {
	w.mu.Lock()
	defer w.mu.Unlock()

	l, ok := w.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(webRateLimit), webRateBurst)
		w.limiters[host] = l
	}
	return l
}

func (w *Web) Connect(params *core.SourceParams) (core.Extractor, error) {
	u, err := nurl.Parse(params.Location)
	if err != nil {
		return nil, fmt.Errorf("could not parse source url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	return &webExtractor{
		client:  w.client,
		limiter: w.limiter(u.Host),
		url:     u.String(),
		dataKey: params.DataKey,
		auth:    authFromCredentials(params.Credentials),
	}, nil
}

type webExtractor struct {
	client  *http.Client
	limiter *rate.Limiter
	url     string
	dataKey string
	auth    auth
}

func (e *webExtractor) Extract(ctx context.Context) ([]core.Record, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	e.auth.apply(req)

	resp, err := e.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s: %s", core.ErrNetwork, e.url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", core.ErrNetwork, err)
	}

	doc, err := decodeJSON(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return recordList(doc, e.dataKey)
}

// auth holds the request credentials of a web source.
// Only the first configured scheme is applied: token, then username, then api key.
type auth struct {
	token        string
	username     string
	password     string
	apiKey       string
	apiKeyHeader string
}

func authFromCredentials(creds map[string]string) auth {
	return auth{
		token:        creds["token"],
		username:     creds["username"],
		password:     creds["password"],
		apiKey:       creds["api_key"],
		apiKeyHeader: creds["api_key_header"],
	}
}

func (a auth) apply(req *http.Request) {
	switch {
	case a.token != "":
		req.Header.Set("Authorization", "Bearer "+a.token)
	case a.username != "" || a.password != "":
		req.SetBasicAuth(a.username, a.password)
	case a.apiKey != "":
		header := a.apiKeyHeader
		if header == "" {
			header = defaultAPIKeyHeader
		}
		req.Header.Set(header, a.apiKey)
	}
}
