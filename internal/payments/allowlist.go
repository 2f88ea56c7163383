package payments

import (
	"net"
	"net/netip"
	"strings"
)

// StripeWebhookIPs are the addresses Stripe sends webhooks from, as
// published at https://stripe.com/files/ips/ips_webhooks.txt
var StripeWebhookIPs = []string{
	"3.18.12.63",
	"3.130.192.231",
	"13.235.14.237",
	"13.235.122.149",
	"18.211.135.69",
	"35.154.171.200",
	"52.15.183.38",
	"54.88.130.119",
	"54.88.130.237",
	"54.187.174.169",
	"54.187.205.235",
	"54.187.216.72",
}

// AllowList matches caller addresses against a fixed set of IPs
type AllowList struct {
	addrs map[netip.Addr]struct{}
}

// NewAllowList builds an allow list, skipping unparseable entries
func NewAllowList(ips []string) *AllowList {
	a := &AllowList{addrs: make(map[netip.Addr]struct{}, len(ips))}
	for _, ip := range ips {
		if addr, err := netip.ParseAddr(strings.TrimSpace(ip)); err == nil {
			a.addrs[addr.Unmap()] = struct{}{}
		}
	}
	return a
}

// Allows reports whether remote, an "ip" or "ip:port" string, is listed
func (a *AllowList) Allows(remote string) bool {
	host := remote
	if h, _, err := net.SplitHostPort(remote); err == nil {
		host = h
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	_, ok := a.addrs[addr.Unmap()]
	return ok
}
