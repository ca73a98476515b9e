package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Ensure HTTPFetcher implements DocumentFetcher
var _ driven.DocumentFetcher = (*HTTPFetcher)(nil)

// Fetch limits
const (
	DefaultMaxDocumentBytes = 100 << 20
	DefaultFetchTimeout     = 60 * time.Second
	maxRedirects            = 5
)

var errBlockedAddress = errors.New("address not allowed")

// FetcherConfig controls where documents may be downloaded from.
type FetcherConfig struct {
	Timeout  time.Duration
	MaxBytes int64

	// AllowedHosts limits downloads to these hosts and their subdomains.
	// Empty allows any host.
	AllowedHosts []string

	// AllowPrivateNetworks permits loopback, private and link-local targets.
	AllowPrivateNetworks bool
}

// HTTPFetcher downloads source documents over HTTP(S)
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
	hosts    []string
}

// NewHTTPFetcher creates a fetcher. Zero values select the defaults.
func NewHTTPFetcher(cfg FetcherConfig) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxDocumentBytes
	}

	f := &HTTPFetcher{maxBytes: cfg.MaxBytes}
	for _, h := range cfg.AllowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			f.hosts = append(f.hosts, h)
		}
	}

	dialer := &net.Dialer{Timeout: 30 * time.Second}
	if !cfg.AllowPrivateNetworks {
		dialer.Control = rejectPrivate
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.Proxy = nil

	f.client = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return f.checkURL(req.URL)
		},
	}
	return f
}

// Fetch returns the document at rawURL
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := f.checkURL(req.URL); err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, errBlockedAddress) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("download document: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, rawURL)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("download document: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", f.maxBytes)
	}
	return body, nil
}

func (f *HTTPFetcher) checkURL(u *url.URL) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidInput, u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("%w: missing host", domain.ErrInvalidInput)
	}
	if !f.hostAllowed(host) {
		return fmt.Errorf("%w: host %s is not an allowed source", domain.ErrInvalidInput, host)
	}
	return nil
}

func (f *HTTPFetcher) hostAllowed(host string) bool {
	if len(f.hosts) == 0 {
		return true
	}
	for _, h := range f.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// rejectPrivate runs after DNS resolution, so names pointing at internal
// addresses are caught too.
func rejectPrivate(_, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", errBlockedAddress, address)
	}
	ip := ap.Addr().Unmap()
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified() || ip.IsMulticast() || ip.IsInterfaceLocalMulticast() {
		return fmt.Errorf("%w: %s", errBlockedAddress, ip)
	}
	return nil
}
