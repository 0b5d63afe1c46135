package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/interfaces"
	"github.com/takeline-lab/takeline/pkg/service/pricing"
	"github.com/urfave/cli/v3"
)

// Pricing holds CLI flags for the pricing service client
type Pricing struct {
	baseURL string
	apiKey  string
}

// Flags returns CLI flags for pricing service configuration
func (p *Pricing) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "pricing-url",
			Usage:       "Base URL of the pricing service",
			Sources:     cli.EnvVars("TAKELINE_PRICING_URL"),
			Destination: &p.baseURL,
		},
		&cli.StringFlag{
			Name:        "pricing-api-key",
			Usage:       "API key for the pricing service",
			Sources:     cli.EnvVars("TAKELINE_PRICING_API_KEY"),
			Destination: &p.apiKey,
		},
	}
}

// Configure creates a pricing service client from the configured flags.
// Returns nil if no base URL is configured (pricing features will be disabled).
func (p *Pricing) Configure() (interfaces.PricingService, error) {
	if p.baseURL == "" {
		return nil, nil
	}

	svc, err := pricing.New(p.baseURL, p.apiKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create pricing client")
	}
	return svc, nil
}
