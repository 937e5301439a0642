package phanganferries

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"ferry-scraper/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

type ClientOptions struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond <= 0 disables rate limiting.
	RequestsPerSecond float64
	Burst             int
	// a random delay in [JitterMin, JitterMax) is waited before every request.
	JitterMin time.Duration
	JitterMax time.Duration
	// Dump receives every request/response pair when debug logging is on.
	Dump restyutil.InstrumentOutput
}

// Client fetches pages from the booking site.
type Client struct {
	http      *resty.Client
	baseUrl   string
	limiter   *rate.Limiter
	jitterMin time.Duration
	jitterMax time.Duration
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	client.SetHeader("accept", "text/html,application/xhtml+xml")

	restyutil.InstrumentClient(
		client,
		otel.Tracer("ferry.lib.scrapers.phanganferries/http"),
		opts.Dump,
	)

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	c := &Client{
		http:      client,
		baseUrl:   opts.BaseURL,
		limiter:   limiter,
		jitterMin: opts.JitterMin,
		jitterMax: opts.JitterMax,
	}
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return c.wait(req.Context())
	})
	return c
}

func (c *Client) BaseURL() string {
	return c.baseUrl
}

func (c *Client) jitter() time.Duration {
	if c.jitterMax <= c.jitterMin {
		return c.jitterMin
	}
	return c.jitterMin + rand.N(c.jitterMax-c.jitterMin)
}

func (c *Client) wait(ctx context.Context) error {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return err
	}
	delay := c.jitter()
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("unexpected status %s for %s", res.Status(), url)
	}
	return res.String(), nil
}

// Search fetches the result page of a single search.
func (c *Client) Search(ctx context.Context, q SearchQuery) (string, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	page, err := c.get(ctx, SearchURL(c.baseUrl, q))
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("search %s -> %s on %s: %w", q.From, q.To, q.Date, err)
	}
	return page, nil
}

// Locations fetches the search page and extracts the location list from it.
func (c *Client) Locations(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Locations")
	defer span.End()

	page, err := c.get(ctx, c.baseUrl)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch search page: %w", err)
	}
	return ParseLocations(page)
}
