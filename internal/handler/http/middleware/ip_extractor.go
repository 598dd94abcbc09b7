package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"newspress/pkg/config"
)

// IPExtractor extracts the client IP address from an HTTP request.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address. It cannot be spoofed and is
// the right choice when the portal is not behind a reverse proxy.
type RemoteAddrExtractor struct{}

// ExtractIP strips the port from r.RemoteAddr.
//
// Examples:
//   - "192.168.1.1:54321" → "192.168.1.1"
//   - "[2001:db8::1]:8080" → "2001:db8::1"
func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxies lists the reverse proxies whose forwarding headers are believed.
type TrustedProxies []netip.Prefix

// Contains reports whether remoteAddr belongs to a trusted proxy.
func (p TrustedProxies) Contains(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ParseTrustedProxies parses IPs and CIDR ranges. A bare IP becomes a /32 or /128.
func ParseTrustedProxies(values []string) (TrustedProxies, error) {
	out := make(TrustedProxies, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(v); err == nil {
			out = append(out, prefix.Masked())
			continue
		}
		ip, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("invalid IP or CIDR %q", v)
		}
		out = append(out, netip.PrefixFrom(ip, ip.BitLen()))
	}
	return out, nil
}

// LoadTrustedProxies reads PORTAL_TRUSTED_PROXIES (comma-separated IPs or CIDRs).
// An empty value disables header trust.
func LoadTrustedProxies() (TrustedProxies, error) {
	return ParseTrustedProxies(config.GetEnvStringList("PORTAL_TRUSTED_PROXIES", nil))
}

// NewIPExtractor returns a RemoteAddrExtractor when no proxy is trusted and a
// TrustedProxyExtractor otherwise.
func NewIPExtractor(proxies TrustedProxies) IPExtractor {
	if len(proxies) == 0 {
		return &RemoteAddrExtractor{}
	}
	return &TrustedProxyExtractor{proxies: proxies}
}

// TrustedProxyExtractor reads X-Forwarded-For, then X-Real-IP, but only when the
// peer is a trusted proxy. Other peers fall back to RemoteAddr.
type TrustedProxyExtractor struct {
	proxies TrustedProxies
}

// ExtractIP implements IPExtractor.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.proxies.Contains(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted peer sent X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff),
			)
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip, nil
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String(), nil
		}
	}
	return extractIPFromAddr(r.RemoteAddr)
}

// extractIPFromAddr accepts "host:port" or a bare IP.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(strings.Trim(addr, "[]")); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// parseFirstIP returns the client entry of an X-Forwarded-For list, or "".
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
