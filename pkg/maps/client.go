package maps

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultStaticBaseURL = "https://maps.googleapis.com/maps/api/staticmap"
	defaultLinkBaseURL   = "https://www.google.com/maps"
	defaultZoom          = 15
	defaultSize          = "300x200"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lng float64
}

// Client builds Google Maps URLs for product sheets. No network calls are made;
// the renderer downstream fetches the image.
type Client struct {
	staticBaseURL string
	linkBaseURL   string
	apiKey        string
	zoom          int
	size          string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithStaticBaseURL overrides the Static Maps endpoint.
func WithStaticBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.staticBaseURL = trimmed
		}
	}
}

// WithZoom overrides the default zoom level.
func WithZoom(zoom int) Option {
	return func(c *Client) {
		if zoom > 0 {
			c.zoom = zoom
		}
	}
}

// WithSize overrides the default WxH image size.
func WithSize(size string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(size); trimmed != "" {
			c.size = trimmed
		}
	}
}

// NewClient builds a URL builder. An empty key is allowed; StaticMapURL then
// returns an empty string.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		staticBaseURL: defaultStaticBaseURL,
		linkBaseURL:   defaultLinkBaseURL,
		apiKey:        strings.TrimSpace(apiKey),
		zoom:          defaultZoom,
		size:          defaultSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// Enabled reports whether static map images can be generated.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// StaticMapURL returns a Static Maps image centered on p with a red marker.
func (c *Client) StaticMapURL(p Point) string {
	if !c.Enabled() {
		return ""
	}
	coords := p.String()
	return fmt.Sprintf("%s?center=%s&zoom=%d&size=%s&markers=color:red|%s&key=%s",
		c.staticBaseURL, coords, c.zoom, c.size, coords, c.apiKey)
}

// LinkURL returns a public Google Maps link for p.
func (c *Client) LinkURL(p Point) string {
	base := defaultLinkBaseURL
	if c != nil && c.linkBaseURL != "" {
		base = c.linkBaseURL
	}
	return fmt.Sprintf("%s?q=%s", base, p.String())
}

// String renders "lat,lng" with the shortest exact decimal form.
func (p Point) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
