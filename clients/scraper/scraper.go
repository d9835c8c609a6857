// Package scraper fetches OpenGraph link previews.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"scriptureCircle/metrics"
)

const (
	defaultTimeout = 5 * time.Second
	// maxBody caps how much of a page is parsed.
	maxBody   = 1 << 20
	userAgent = "scriptureCircle-preview/1.0"
)

type Preview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SiteName    string `json:"siteName"`
}

type Scraper interface {
	// Preview never fails; an unreachable or unparsable page yields an empty Preview.
	Preview(ctx context.Context, rawURL string) Preview
}

type Client struct {
	http *resty.Client
}

var _ Scraper = (*Client)(nil)

// ErrForbiddenAddress is returned when a preview would connect to a host that
// is not publicly routable.
var ErrForbiddenAddress = errors.New("address is not publicly routable")

// carrier-grade NAT space is shared, not public.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// NewHTTPClient returns a client that refuses to connect to private, loopback
// and link-local addresses. The check runs on every dial, after DNS
// resolution, so redirects and rebinding hosts are covered too.
func NewHTTPClient() *resty.Client {
	return newHTTPClient(publicOnly)
}

func newHTTPClient(control func(network, address string, c syscall.RawConn) error) *resty.Client {
	dialer := &net.Dialer{
		Timeout:   defaultTimeout,
		KeepAlive: 30 * time.Second,
		Control:   control,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   defaultTimeout,
		ResponseHeaderTimeout: defaultTimeout,
	}
	return resty.New().
		SetTransport(transport).
		SetTimeout(defaultTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")
}

func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}
	if !PublicAddr(ip) {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, ip)
	}
	return nil
}

// PublicAddr reports whether ip is a globally routable unicast address.
func PublicAddr(ip netip.Addr) bool {
	ip = ip.Unmap()
	return ip.IsGlobalUnicast() &&
		!ip.IsPrivate() &&
		!ip.IsLoopback() &&
		!ip.IsLinkLocalUnicast() &&
		!sharedAddressSpace.Contains(ip)
}

func NewClient(http *resty.Client) *Client {
	return &Client{http: http}
}

// ValidURL reports whether raw is an absolute http(s) URL.
func ValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (c *Client) Preview(ctx context.Context, rawURL string) Preview {
	if !ValidURL(rawURL) {
		return Preview{}
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("scraper").Inc()
		slog.With("error", err.Error()).Debug("preview fetch failed", "url", rawURL)
		return Preview{}
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.IsError() {
		slog.Debug("preview fetch returned error status", "url", rawURL, "status", resp.StatusCode())
		return Preview{}
	}
	if mt, _, err := mime.ParseMediaType(resp.Header().Get("Content-Type")); err != nil || !strings.Contains(mt, "html") {
		return Preview{}
	}

	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(io.LimitReader(body, maxBody)); err != nil {
		slog.With("error", err.Error()).Debug("preview read failed", "url", rawURL)
		return Preview{}
	}
	p, err := Parse(buf.Bytes())
	if err != nil {
		return Preview{}
	}
	if p.Image != "" {
		p.Image = resolve(rawURL, p.Image)
	}
	return p
}

// Parse extracts OpenGraph properties from an HTML document, falling back on
// <title> and the description meta tag.
func Parse(doc []byte) (Preview, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return Preview{}, err
	}
	var (
		p                      Preview
		title, metaDescription string
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case atom.Meta:
				key := strings.ToLower(attr(n, "property"))
				if key == "" {
					key = strings.ToLower(attr(n, "name"))
				}
				value := strings.TrimSpace(attr(n, "content"))
				switch key {
				case "og:title":
					setOnce(&p.Title, value)
				case "og:description":
					setOnce(&p.Description, value)
				case "og:image", "og:image:url":
					setOnce(&p.Image, value)
				case "og:site_name":
					setOnce(&p.SiteName, value)
				case "description":
					setOnce(&metaDescription, value)
				}
			case atom.Body:
				// Metadata lives in <head>.
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	setOnce(&p.Title, title)
	setOnce(&p.Description, metaDescription)
	return p, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func setOnce(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
