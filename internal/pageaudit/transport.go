package pageaudit

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"
)

const (
	maxRedirects = 5
	userAgent    = "WebsiteAuditBot/1.0"

	fetchTimeout = 10 * time.Second
	probeTimeout = 5 * time.Second
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
	errBlockedAddress   = errors.New("request to private/reserved network address is not allowed")
)

// The audit dials whatever addresses the target page points at, so every
// outbound connection is filtered against private and reserved ranges to keep
// probes away from internal infrastructure (SSRF).

// reservedPrefixes lists IPv4 ranges that netip.Addr's own classifiers
// (IsLoopback, IsPrivate, IsLinkLocal*, IsUnspecified) do not cover.
var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),   // carrier-grade NAT, RFC 6598
	netip.MustParsePrefix("192.0.0.0/24"),    // IETF protocol assignments, RFC 6890
	netip.MustParsePrefix("192.0.2.0/24"),    // TEST-NET-1, RFC 5737
	netip.MustParsePrefix("198.18.0.0/15"),   // benchmarking, RFC 2544
	netip.MustParsePrefix("198.51.100.0/24"), // TEST-NET-2, RFC 5737
	netip.MustParsePrefix("203.0.113.0/24"),  // TEST-NET-3, RFC 5737
}

// safeDialer rejects connections to private, loopback, link-local, and other
// reserved destinations. Filtering happens in the dialer's Control hook, after
// DNS resolution, so a hostname that resolves to an internal address (or is
// re-bound to one mid-audit) is still caught.
func safeDialer() *net.Dialer {
	return &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   blockPrivateAddresses,
	}
}

func blockPrivateAddresses(_ string, address string, _ syscall.RawConn) error {
	addrPort, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %w", errBlockedAddress, err)
	}

	if isBlockedIP(addrPort.Addr()) {
		return fmt.Errorf("%w: %s", errBlockedAddress, addrPort.Addr())
	}

	return nil
}

func isBlockedIP(addr netip.Addr) bool {
	// Strip the IPv4-mapped IPv6 form first so ::ffff:10.0.0.1 and friends
	// cannot slip past the IPv4 checks.
	addr = addr.Unmap()

	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return true
	}

	for _, p := range reservedPrefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// safeTransport returns an http.Transport that dials through the private
// address filter. Every outbound socket the audit opens, primary fetch and
// auxiliary probes alike, goes through this.
func safeTransport(maxConns int) *http.Transport {
	return &http.Transport{
		DialContext:         safeDialer().DialContext,
		MaxConnsPerHost:     maxConns,
		MaxIdleConnsPerHost: maxConns,
		IdleConnTimeout:     90 * time.Second,
	}
}

// followRedirects validates redirect targets and limits the chain length.
func followRedirects(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// newProbeClient returns the short-timeout client shared by the auxiliary
// probes. Probes follow redirects under the same chain policy as the fetch.
func newProbeClient(transport http.RoundTripper) *http.Client {
	return &http.Client{
		Timeout:       probeTimeout,
		Transport:     transport,
		CheckRedirect: followRedirects,
	}
}
