package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/service/plans"
	"github.com/urfave/cli/v3"
)

// Plans holds CLI flags for the plan document store
type Plans struct {
	bucket string
	prefix string
}

// Flags returns CLI flags for plan store configuration
func (p *Plans) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "plans-bucket",
			Usage:       "Cloud Storage bucket holding plan documents",
			Sources:     cli.EnvVars("TAKELINE_PLANS_BUCKET"),
			Destination: &p.bucket,
		},
		&cli.StringFlag{
			Name:        "plans-prefix",
			Usage:       "Object name prefix within the plans bucket",
			Sources:     cli.EnvVars("TAKELINE_PLANS_PREFIX"),
			Destination: &p.prefix,
		},
	}
}

// Configure creates a plan store from the configured flags. Returns nil if
// no bucket is configured (plan features will be disabled). The caller is
// responsible for calling Close() on the returned service.
func (p *Plans) Configure(ctx context.Context) (*plans.Service, error) {
	if p.bucket == "" {
		return nil, nil
	}

	var opts []plans.Option
	if p.prefix != "" {
		opts = append(opts, plans.WithPrefix(p.prefix))
	}
	svc, err := plans.New(ctx, p.bucket, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create plan store")
	}
	return svc, nil
}
