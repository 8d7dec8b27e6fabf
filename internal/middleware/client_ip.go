package middleware

import (
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
)

// clientIPResolver finds the address a report submitter connected from.
// Forwarding headers count only when the direct peer is one of our proxies.
type clientIPResolver struct {
	proxies []netip.Prefix
}

func newClientIPResolver(cidrs []string) clientIPResolver {
	var resolver clientIPResolver
	for _, raw := range cidrs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			slog.Warn("Skipping trusted proxy entry", "cidr", raw, "error", err)
			continue
		}
		resolver.proxies = append(resolver.proxies, prefix.Masked())
	}
	return resolver
}

func (c clientIPResolver) resolve(r *http.Request) string {
	peer, ok := parseAddr(r.RemoteAddr)
	if !ok {
		return r.RemoteAddr
	}
	if !c.isProxy(peer) {
		return peer.String()
	}

	if addr, ok := c.fromForwardedFor(r.Header.Get("X-Forwarded-For")); ok {
		return addr.String()
	}
	if addr, ok := parseAddr(r.Header.Get("X-Real-IP")); ok && !c.isProxy(addr) {
		return addr.String()
	}
	return peer.String()
}

// fromForwardedFor walks the hop list right to left and stops at the first
// hop we do not operate. A chain made only of our proxies yields its origin.
func (c clientIPResolver) fromForwardedFor(header string) (netip.Addr, bool) {
	var hops []netip.Addr
	for _, part := range strings.Split(header, ",") {
		if addr, ok := parseAddr(part); ok {
			hops = append(hops, addr)
		}
	}
	if len(hops) == 0 {
		return netip.Addr{}, false
	}

	for i := len(hops) - 1; i >= 0; i-- {
		if !c.isProxy(hops[i]) {
			return hops[i], true
		}
	}
	return hops[0], true
}

func (c clientIPResolver) isProxy(addr netip.Addr) bool {
	for _, prefix := range c.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// parseAddr accepts "ip", "ip:port" and "[v6]:port".
func parseAddr(raw string) (netip.Addr, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return netip.Addr{}, false
	}
	if addrPort, err := netip.ParseAddrPort(raw); err == nil {
		return addrPort.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(strings.Trim(raw, "[]"))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
