package classify

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	netproxy "golang.org/x/net/proxy"
)

// newHTTPClient builds the client used to reach the classifier. proxyURL may
// be empty, an http(s):// proxy or a socks5:// proxy with optional user info.
func newHTTPClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	proxyURL = strings.TrimSpace(proxyURL)
	if proxyURL == "" {
		return &http.Client{Timeout: timeout}, nil
	}
	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("classify: invalid proxy %q: %w", proxyURL, err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		var auth *netproxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &netproxy.Auth{User: u.User.Username(), Password: pass}
		}
		dialer, err := netproxy.SOCKS5("tcp", u.Host, auth, netproxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("classify: socks5 proxy: %w", err)
		}
		cd, ok := dialer.(netproxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("classify: socks5 proxy %q cannot dial with a context", u.Host)
		}
		transport.Proxy = nil
		transport.DialContext = cd.DialContext
	default:
		return nil, fmt.Errorf("classify: unsupported proxy scheme %q", u.Scheme)
	}
	return &http.Client{Timeout: timeout, Transport: transport}, nil
}
