// Package client fetches pages from Tibia.com and runs them through the
// parsers of the tibia package. It does not retry or cache; callers decide
// how to pace their requests.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tibiaweb/lib/configutil"
	"tibiaweb/lib/telemetry"
	"tibiaweb/tibia"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("tibiaweb/client")

var (
	// ErrForbidden reports a 403 response. The site serves these when it
	// is rate limiting the caller.
	ErrForbidden = errors.New("the site refused the request, likely rate limiting")
	// ErrUnavailable reports any other non-200 response.
	ErrUnavailable = errors.New("the site did not serve the page")
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Config configures a Client. The zero value targets the live site with a
// browser user agent and a 30 second timeout.
type Config struct {
	BaseURL        string `json:"base_url"`
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = tibia.BaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.TimeoutSeconds == 0 {
		config.TimeoutSeconds = 30
	}

	rest := resty.New()
	rest.SetHeader("user-agent", config.UserAgent)
	rest.SetTimeout(time.Duration(config.TimeoutSeconds) * time.Second)
	telemetry.InstrumentResty(rest, "tibiaweb/client")

	return &Client{
		http:    rest,
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
	}
}

// NewClientFromConfig builds a client from a json5 config file, merged
// with its .local override when one exists.
func NewClientFromConfig(name string) (*Client, error) {
	config, err := configutil.ReadConfig[Config](name)
	if err != nil {
		return nil, err
	}
	return NewClient(config), nil
}

// get fetches one page. The URL builders of the tibia package always
// target the live site, so the configured base URL is swapped in here,
// which is what lets tests point the client at a local server.
func (c *Client) get(ctx context.Context, pageURL string) (string, error) {
	pageURL = strings.Replace(pageURL, tibia.BaseURL, c.baseURL, 1)

	ctx, span := tracer.Start(ctx, "get", trace.WithAttributes(
		attribute.String("url", pageURL),
	))
	defer span.End()

	res, err := c.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", err
	}
	if res.StatusCode() == http.StatusForbidden {
		span.RecordError(ErrForbidden)
		span.SetStatus(codes.Error, "got 403 response")
		return "", ErrForbidden
	}
	if res.StatusCode() != http.StatusOK {
		err := fmt.Errorf("%w: status %d", ErrUnavailable, res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "got non-200 response")
		return "", err
	}
	slog.DebugContext(ctx, "fetched page", "url", pageURL, "size", len(res.Body()))
	return res.String(), nil
}
