package network

import (
	"taskprovision/sources/configuration"
	"taskprovision/sources/tracing"

	"golang.org/x/net/proxy"
)

// NewProxyDialer builds a SOCKS5 dialer when a proxy address is configured,
// otherwise falls back to direct connections.
func NewProxyDialer(config *configuration.Config, log *tracing.Logger) proxy.Dialer {
	if config.Proxy.Address == "" {
		return proxy.Direct
	}

	var auth *proxy.Auth
	if config.Proxy.User != "" {
		auth = &proxy.Auth{User: config.Proxy.User, Password: config.Proxy.Password}
	}

	dialer, err := proxy.SOCKS5("tcp", config.Proxy.Address, auth, proxy.Direct)
	if err != nil {
		log.F("Failed to create proxy dialer", tracing.InnerError, err)
	}

	log.I("Outbound traffic routed through proxy", tracing.ProxyUrl, config.Proxy.Address)
	return dialer
}
