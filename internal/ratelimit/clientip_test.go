package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		realIP     string
		remoteAddr string
		trustProxy bool
		want       string
	}{
		{name: "proxy hop after public client", xff: "203.0.113.50, 10.0.0.1", remoteAddr: "10.0.0.1:8443", trustProxy: true, want: "203.0.113.50"},
		{name: "spoofed left entry ignored", xff: "1.2.3.4, 198.51.100.9, 172.16.0.4", remoteAddr: "172.16.0.4:8443", trustProxy: true, want: "198.51.100.9"},
		{name: "all private hops", xff: "192.168.1.1, 10.0.0.1", remoteAddr: "10.0.0.1:8443", trustProxy: true, want: "10.0.0.1"},
		{name: "real ip header", realIP: "203.0.113.51", remoteAddr: "10.0.0.1:8443", trustProxy: true, want: "203.0.113.51"},
		{name: "untrusted proxy headers ignored", xff: "203.0.113.50", realIP: "203.0.113.51", remoteAddr: "192.168.1.100:54321", want: "192.168.1.100"},
		{name: "remote addr only", remoteAddr: "192.168.1.100:54321", trustProxy: true, want: "192.168.1.100"},
		{name: "remote addr without port", remoteAddr: "192.168.1.100", want: "192.168.1.100"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::7]:443", want: "2001:db8::7"},
		{name: "ipv4-mapped remote addr", remoteAddr: "[::ffff:198.51.100.3]:443", want: "198.51.100.3"},
		{name: "unparseable remote addr", remoteAddr: "@unix", want: "@unix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/sponsorships", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := GetClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	private := []string{"10.1.2.3", "172.31.255.255", "192.168.0.10", "127.0.0.1", "169.254.10.1", "::1", "fd12::1", "fe80::1", "::ffff:10.0.0.1", "::ffff:127.0.0.1"}
	public := []string{"203.0.113.50", "8.8.8.8", "172.32.0.1", "::ffff:1.1.1.1", "2001:4860:4860::8888", "not-an-ip", ""}

	for _, ip := range private {
		if !isPrivateIP(ip) {
			t.Errorf("isPrivateIP(%q) = false, want true", ip)
		}
	}
	for _, ip := range public {
		if isPrivateIP(ip) {
			t.Errorf("isPrivateIP(%q) = true, want false", ip)
		}
	}
}
