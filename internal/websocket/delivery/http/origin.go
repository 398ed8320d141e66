package http

import (
	"net"
	"net/http"
	"net/url"
	"slices"

	"github.com/gorilla/websocket"
)

const environmentProduction = "production"

var privateSubnets = []*net.IPNet{
	mustCIDR("10.0.0.0/8"),
	mustCIDR("172.16.0.0/12"),
	mustCIDR("192.168.0.0/16"),
}

func mustCIDR(cidr string) *net.IPNet {
	_, subnet, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}
	return subnet
}

// newUpgrader creates a WebSocket upgrader with environment-aware origin
// validation. Production accepts only the configured origins; other
// environments also accept localhost and private subnets. Requests without
// an Origin header come from non-browser clients and are accepted.
func newUpgrader(cfg Config) websocket.Upgrader {
	env := cfg.Environment
	if env == "" {
		env = environmentProduction
	}
	allowed := slices.Clone(cfg.AllowedOrigins)

	return websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || slices.Contains(allowed, origin) {
				return true
			}
			if env == environmentProduction {
				return false
			}
			return isLocalhostOrigin(origin) || isPrivateOrigin(origin)
		},
	}
}

// isLocalhostOrigin checks if an origin is localhost or a loopback address
func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	hostname := u.Hostname()
	if hostname == "localhost" {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}

// isPrivateOrigin checks if an origin is within an RFC 1918 subnet
func isPrivateOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	ip := net.ParseIP(u.Hostname())
	if ip == nil {
		return false
	}
	for _, subnet := range privateSubnets {
		if subnet.Contains(ip) {
			return true
		}
	}
	return false
}
