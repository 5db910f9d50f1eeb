package api

import (
	"github.com/gofiber/fiber/v3"

	"poolgate/internal/hosts"
	"poolgate/internal/presenter"
)

// ValidateAddressRequest represents a request to validate a token mint address
type ValidateAddressRequest struct {
	Address string `json:"address"`
}

// ValidateAddressResponse mirrors address.ValidationResult
type ValidateAddressResponse struct {
	IsValid    bool   `json:"is_valid"`
	Error      string `json:"error,omitempty"`
	Strictness string `json:"strictness"`
}

// PoolURLRequest represents a request to build a pool creation link
type PoolURLRequest struct {
	Address string `json:"address"`
	Network string `json:"network,omitempty"` // "mainnet" or "devnet"; empty means devnet
}

// PoolURLResponse carries the built link plus how the page must open it
type PoolURLResponse struct {
	URL     string `json:"url"`
	Host    string `json:"host"`
	Network string `json:"network"`
	Target  string `json:"target"`
	Rel     string `json:"rel"`
}

// CheckLinkRequest represents a pre-flight check for an outbound link
type CheckLinkRequest struct {
	URL string `json:"url"`
}

// CheckLinkResponse is intentionally a bare verdict
type CheckLinkResponse struct {
	Allowed bool `json:"allowed"`
}

// HostsResponse lists the trusted destinations
type HostsResponse struct {
	Hosts          []string          `json:"hosts"`
	Networks       map[string]string `json:"networks"`
	DefaultNetwork string            `json:"default_network"`
}

// Health reports liveness
func (s *Server) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ValidateAddress validates a token mint address
func (s *Server) ValidateAddress(c fiber.Ctx) error {
	var req ValidateAddressRequest
	if err := c.Bind().Body(&req); err != nil {
		return s.badRequest(c, err, presenter.ContextValidation)
	}

	result := s.validator.Validate(req.Address)
	return c.JSON(ValidateAddressResponse{
		IsValid:    result.IsValid,
		Error:      result.Error,
		Strictness: string(s.validator.Strictness()),
	})
}

// BuildPoolURL builds the pool creation link for a token mint
func (s *Server) BuildPoolURL(c fiber.Ctx) error {
	var req PoolURLRequest
	if err := c.Bind().Body(&req); err != nil {
		return s.badRequest(c, err, presenter.ContextValidation)
	}

	network := s.network
	if req.Network != "" {
		parsed, err := hosts.ParseNetwork(req.Network)
		if err != nil {
			return s.badRequest(c, err, presenter.ContextValidation)
		}
		network = parsed
	}

	link, err := s.builder.BuildPoolCreationURL(req.Address, network)
	if err != nil {
		return s.badRequest(c, err, presenter.ContextValidation)
	}

	host, _ := s.registry.Host(network)
	return c.JSON(PoolURLResponse{
		URL:     link,
		Host:    host,
		Network: string(network),
		Target:  "_blank",
		Rel:     "noopener noreferrer",
	})
}

// CheckLink answers whether the page may navigate to a URL
func (s *Server) CheckLink(c fiber.Ctx) error {
	var req CheckLinkRequest
	if err := c.Bind().Body(&req); err != nil {
		return s.badRequest(c, err, presenter.ContextNavigation)
	}

	_, err := s.guard.Check(req.URL)
	if err != nil {
		s.logger.Info("link check rejected", "request_id", GetRequestID(c), "error", err)
	}
	return c.JSON(CheckLinkResponse{Allowed: err == nil})
}

// ListHosts returns the trusted host registry
func (s *Server) ListHosts(c fiber.Ctx) error {
	networks := make(map[string]string)
	for _, n := range s.registry.Networks() {
		u, err := s.registry.BaseURL(n)
		if err != nil {
			continue
		}
		networks[string(n)] = u.String()
	}

	return c.JSON(HostsResponse{
		Hosts:          s.registry.Hosts(),
		Networks:       networks,
		DefaultNetwork: string(s.network),
	})
}

func (s *Server) badRequest(c fiber.Ctx, err error, context string) error {
	s.logger.Debug("rejected request", "request_id", GetRequestID(c), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": presenter.Present(err, context),
	})
}
