// Package poolurl builds the outbound DEX link used to create a liquidity
// pool for a token mint.
package poolurl

import (
	"errors"
	"fmt"
	"net/url"

	"poolgate/internal/address"
	"poolgate/internal/hosts"
)

// MintParam is the query parameter that carries the token mint.
const MintParam = "mint"

// ErrHostMismatch is returned when a produced URL does not resolve to the
// registered host. It indicates a registry bug, not bad input.
var ErrHostMismatch = errors.New("built URL does not target the registered host")

// InvalidAddressError is returned when the address fails re-validation at
// build time.
type InvalidAddressError struct {
	Err *address.ValidationError
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address: %v", e.Err)
}

func (e *InvalidAddressError) Unwrap() error {
	return e.Err
}

// Builder constructs pool-creation URLs against a trusted host registry.
type Builder struct {
	validator *address.Validator
	registry  *hosts.Registry
}

// NewBuilder creates a builder. A nil validator validates structurally; a nil
// registry uses hosts.Default().
func NewBuilder(validator *address.Validator, registry *hosts.Registry) *Builder {
	if validator == nil {
		validator = address.NewValidator(address.StrictnessStructural)
	}
	if registry == nil {
		registry = hosts.Default()
	}
	return &Builder{
		validator: validator,
		registry:  registry,
	}
}

// BuildPoolCreationURL returns the pool-creation URL for mint on network.
// An empty network selects hosts.DefaultNetwork. The address is validated
// again here no matter what the caller already checked.
func (b *Builder) BuildPoolCreationURL(mint string, network hosts.Network) (string, error) {
	if err := b.validator.Check(mint); err != nil {
		var vErr *address.ValidationError
		if !errors.As(err, &vErr) {
			vErr = &address.ValidationError{Field: "address", Message: address.MsgEmpty}
		}
		return "", &InvalidAddressError{Err: vErr}
	}

	if network == "" {
		network = hosts.DefaultNetwork
	}

	u, err := b.registry.BaseURL(network)
	if err != nil {
		return "", err
	}

	query := u.Query()
	query.Set(MintParam, mint)
	u.RawQuery = query.Encode()
	built := u.String()

	if err := b.verify(built, network); err != nil {
		return "", err
	}

	return built, nil
}

// verify re-parses built and checks it against the registry.
func (b *Builder) verify(built string, network hosts.Network) error {
	parsed, err := url.Parse(built)
	if err != nil {
		return fmt.Errorf("failed to re-parse built URL: %w", err)
	}

	want, ok := b.registry.Host(network)
	if !ok {
		return &hosts.UnknownNetworkError{Network: string(network)}
	}

	if parsed.Scheme != "https" || parsed.User != nil || parsed.Port() != "" ||
		parsed.Hostname() != want || !b.registry.AllowsHost(parsed.Hostname()) {
		return ErrHostMismatch
	}

	return nil
}

var defaultBuilder = NewBuilder(nil, nil)

// BuildPoolCreationURL builds a URL with the structural validator and the
// default registry.
func BuildPoolCreationURL(mint string, network hosts.Network) (string, error) {
	return defaultBuilder.BuildPoolCreationURL(mint, network)
}
