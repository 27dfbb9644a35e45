// api/auth/clientip.go
package auth

import (
	"net"
	"net/http"
	"strings"
)

// trustedProxyHeaders is the fixed priority order for resolving the caller's
// network address behind proxies.
var trustedProxyHeaders = []string{
	"X-Forwarded-For",
	"X-Real-Ip",
	"X-Client-Ip",
}

// ClientIP resolves the caller's address from proxy headers, falling back to
// the connection's remote address. Private and reserved ranges in proxy
// headers are rejected so a spoofed internal address never lands in the audit
// trail.
func ClientIP(headers http.Header, remoteAddr string) string {
	for _, header := range trustedProxyHeaders {
		value := headers.Get(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For may carry a chain; the left-most public address is
		// the original caller.
		for _, candidate := range strings.Split(value, ",") {
			ip := net.ParseIP(strings.TrimSpace(candidate))
			if ip != nil && publicIP(ip) {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	return host
}

func publicIP(ip net.IP) bool {
	return !ip.IsPrivate() &&
		!ip.IsLoopback() &&
		!ip.IsLinkLocalUnicast() &&
		!ip.IsLinkLocalMulticast() &&
		!ip.IsUnspecified()
}
