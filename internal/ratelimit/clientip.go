package ratelimit

import (
	"net/http"
	"net/netip"
	"strings"
)

// GetClientIP returns the address to rate limit on. Forwarding headers are
// only read when trustProxy is set; otherwise anyone could pick their own IP.
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip, ok := forwardedFor(r.Header.Get("X-Forwarded-For")); ok {
			return ip
		}
		if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}
	}
	return remoteIP(r.RemoteAddr)
}

// forwardedFor walks the hops right to left and returns the first public
// one, or the nearest hop when all are private.
func forwardedFor(header string) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}
	hops := strings.Split(header, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop != "" && !isPrivateIP(hop) {
			return hop, true
		}
	}
	return strings.TrimSpace(hops[len(hops)-1]), true
}

func remoteIP(remoteAddr string) string {
	if addrPort, err := netip.ParseAddrPort(remoteAddr); err == nil {
		return addrPort.Addr().Unmap().String()
	}
	if addr, err := netip.ParseAddr(remoteAddr); err == nil {
		return addr.Unmap().String()
	}
	return remoteAddr
}

// isPrivateIP covers RFC 1918, unique-local, loopback and link-local
// addresses, including IPv4-mapped IPv6 forms.
func isPrivateIP(raw string) bool {
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	return addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast()
}
