package pageaudit

import (
	"errors"
	"net/http"
	"net/netip"
	"net/url"
	"testing"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want bool
	}{
		// Addresses the audit must never dial.
		{name: "loopback v4", addr: "127.0.0.1", want: true},
		{name: "loopback v4 high", addr: "127.255.255.254", want: true},
		{name: "loopback v6", addr: "::1", want: true},
		{name: "rfc1918 10/8", addr: "10.255.255.255", want: true},
		{name: "rfc1918 172.16/12", addr: "172.31.255.254", want: true},
		{name: "rfc1918 192.168/16", addr: "192.168.0.10", want: true},
		{name: "ipv6 unique local", addr: "fd12:3456:789a::1", want: true},
		{name: "link-local v4", addr: "169.254.10.20", want: true},
		{name: "link-local v6", addr: "fe80::a", want: true},
		{name: "cloud metadata endpoint", addr: "169.254.169.254", want: true},
		{name: "carrier-grade nat start", addr: "100.64.0.0", want: true},
		{name: "carrier-grade nat end", addr: "100.127.255.255", want: true},
		{name: "ietf protocol block", addr: "192.0.0.8", want: true},
		{name: "test-net-1", addr: "192.0.2.200", want: true},
		{name: "test-net-2", addr: "198.51.100.7", want: true},
		{name: "test-net-3", addr: "203.0.113.99", want: true},
		{name: "benchmarking low", addr: "198.18.0.0", want: true},
		{name: "benchmarking high", addr: "198.19.255.255", want: true},
		{name: "unspecified v4", addr: "0.0.0.0", want: true},
		{name: "unspecified v6", addr: "::", want: true},
		{name: "multicast v4", addr: "224.0.0.1", want: true},
		{name: "broadcast", addr: "255.255.255.255", want: true},

		// IPv4-mapped IPv6 must be unmapped before the checks run.
		{name: "mapped loopback", addr: "::ffff:127.0.0.1", want: true},
		{name: "mapped rfc1918", addr: "::ffff:192.168.1.1", want: true},
		{name: "mapped metadata", addr: "::ffff:169.254.169.254", want: true},
		{name: "mapped public stays open", addr: "::ffff:1.1.1.1", want: false},

		// Ordinary internet destinations stay reachable.
		{name: "public dns", addr: "8.8.8.8", want: false},
		{name: "public web host", addr: "93.184.216.34", want: false},
		{name: "public v6", addr: "2606:4700:4700::1111", want: false},
		{name: "below carrier-grade nat", addr: "100.63.255.255", want: false},
		{name: "above carrier-grade nat", addr: "100.128.0.0", want: false},
		{name: "above benchmarking", addr: "198.20.0.1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBlockedIP(netip.MustParseAddr(tt.addr)); got != tt.want {
				t.Errorf("isBlockedIP(%s) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}
}

func TestBlockPrivateAddresses(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "public v4", address: "93.184.216.34:443", wantErr: false},
		{name: "public v6", address: "[2606:4700:4700::1111]:443", wantErr: false},
		{name: "loopback", address: "127.0.0.1:8080", wantErr: true},
		{name: "private redis port", address: "10.0.0.5:6379", wantErr: true},
		{name: "metadata service", address: "169.254.169.254:80", wantErr: true},
		{name: "v6 loopback", address: "[::1]:80", wantErr: true},
		{name: "mapped loopback", address: "[::ffff:127.0.0.1]:80", wantErr: true},
		{name: "missing port", address: "8.8.8.8", wantErr: true},
		{name: "hostname instead of ip", address: "internal.corp:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := blockPrivateAddresses("tcp4", tt.address, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("blockPrivateAddresses(%q) error = %v, wantErr %v", tt.address, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errBlockedAddress) {
				t.Errorf("blockPrivateAddresses(%q) error = %v, want errBlockedAddress", tt.address, err)
			}
		})
	}
}

func TestFollowRedirects(t *testing.T) {
	tests := []struct {
		name    string
		scheme  string
		via     int
		wantErr error
	}{
		{name: "https within limit", scheme: "https", via: 3, wantErr: nil},
		{name: "http within limit", scheme: "http", via: 1, wantErr: nil},
		{name: "chain exhausted", scheme: "https", via: 5, wantErr: errTooManyRedirects},
		{name: "ftp scheme", scheme: "ftp", via: 0, wantErr: errBlockedRedirect},
		{name: "file scheme", scheme: "file", via: 0, wantErr: errBlockedRedirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{URL: &url.URL{Scheme: tt.scheme, Host: "example.com"}}
			via := make([]*http.Request, tt.via)

			err := followRedirects(req, via)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("followRedirects() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("followRedirects() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
