// Package hosts holds the process-wide registry of trusted outbound
// destinations. The registry is built once from the entries below and has no
// exported way to change it.
package hosts

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Network is a named Solana cluster.
type Network string

const (
	Mainnet Network = "mainnet"
	Devnet  Network = "devnet"

	// DefaultNetwork is used whenever the caller does not pick one. It is the
	// non-production cluster.
	DefaultNetwork = Devnet
)

// ParseNetwork converts user input into a Network. An empty string selects
// DefaultNetwork; "mainnet-beta" is accepted as an alias for Mainnet.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultNetwork, nil
	case "mainnet", "mainnet-beta":
		return Mainnet, nil
	case "devnet":
		return Devnet, nil
	default:
		return "", &UnknownNetworkError{Network: s}
	}
}

// UnknownNetworkError is returned for a network that has no registry entry.
type UnknownNetworkError struct {
	Network string
}

func (e *UnknownNetworkError) Error() string {
	return fmt.Sprintf("unknown network: %q", e.Network)
}

// Display returns a human-readable cluster name.
func (n Network) Display() string {
	switch n {
	case Mainnet:
		return "Solana Mainnet"
	case Devnet:
		return "Solana Devnet (Testnet)"
	default:
		return string(n)
	}
}

// Registry maps networks to pool-creation base URLs and holds the flat
// allow-list of hostnames that outbound navigation may target.
type Registry struct {
	bases   map[Network]*url.URL
	allowed map[string]struct{}
}

const (
	// DEXHost is the DEX site every registry entry points at.
	DEXHost = "raydium.io"
	// DEXHomeURL is the DEX landing page.
	DEXHomeURL = "https://" + DEXHost + "/"
)

var defaultRegistry = mustBuild(
	map[Network]string{
		Mainnet: "https://raydium.io/liquidity/create-pool/",
		Devnet:  "https://raydium.io/liquidity/create-pool/?cluster=devnet",
	},
	[]string{
		"raydium.io",
		"www.raydium.io",
	},
)

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

func mustBuild(bases map[Network]string, allowed []string) *Registry {
	r := &Registry{
		bases:   make(map[Network]*url.URL, len(bases)),
		allowed: make(map[string]struct{}, len(allowed)),
	}
	for _, h := range allowed {
		r.allowed[strings.ToLower(h)] = struct{}{}
	}
	for network, raw := range bases {
		u, err := url.Parse(raw)
		if err != nil {
			panic(fmt.Sprintf("hosts: bad base URL for %s: %v", network, err))
		}
		if u.Scheme != "https" || !r.AllowsHost(u.Hostname()) {
			panic(fmt.Sprintf("hosts: base URL for %s is not an allowed https host", network))
		}
		r.bases[network] = u
	}
	return r
}

// BaseURL returns a copy of the pool-creation base URL for network. The
// caller may modify the copy freely.
func (r *Registry) BaseURL(network Network) (*url.URL, error) {
	base, ok := r.bases[network]
	if !ok {
		return nil, &UnknownNetworkError{Network: string(network)}
	}
	clone := *base
	if base.User != nil {
		u := *base.User
		clone.User = &u
	}
	return &clone, nil
}

// Host returns the registered hostname for network.
func (r *Registry) Host(network Network) (string, bool) {
	base, ok := r.bases[network]
	if !ok {
		return "", false
	}
	return base.Hostname(), true
}

// AllowsHost reports whether host is on the allow-list. Matching is a
// case-insensitive exact comparison: subdomains, suffixes and trailing dots
// are not accepted unless listed.
func (r *Registry) AllowsHost(host string) bool {
	if host == "" {
		return false
	}
	for allowed := range r.allowed {
		if strings.EqualFold(host, allowed) {
			return true
		}
	}
	return false
}

// Hosts returns the allow-list, sorted.
func (r *Registry) Hosts() []string {
	out := make([]string, 0, len(r.allowed))
	for h := range r.allowed {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Networks returns the registered networks, sorted.
func (r *Registry) Networks() []Network {
	out := make([]Network, 0, len(r.bases))
	for n := range r.bases {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
