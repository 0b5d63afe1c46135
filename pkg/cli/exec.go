package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/takeline-lab/takeline/pkg/cli/config"
	"github.com/takeline-lab/takeline/pkg/domain/types"
	"github.com/takeline-lab/takeline/pkg/usecase"
	"github.com/takeline-lab/takeline/pkg/utils/logging"
)

func cmdExec() *cli.Command {
	var projectID string
	var selected string
	var repoCfg config.Repository
	var assembliesCfg config.Assemblies
	var pricingCfg config.Pricing

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "project-id",
			Usage:       "Active project ID the command applies to",
			Sources:     cli.EnvVars("TAKELINE_PROJECT_ID"),
			Destination: &projectID,
		},
		&cli.StringFlag{
			Name:        "select",
			Usage:       "Comma-separated takeoff item IDs treated as the current selection",
			Destination: &selected,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, assembliesCfg.Flags()...)
	flags = append(flags, pricingCfg.Flags()...)

	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"x"},
		Usage:     "Execute one estimating command and print the results",
		ArgsUsage: "<command text>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if text == "" {
				return goerr.New("command text is required")
			}

			ectx, err := buildExecContext(projectID, selected)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			catalog, err := assembliesCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load assembly catalog")
			}

			ucOpts := []usecase.Option{usecase.WithAssemblyCatalog(catalog)}
			if pricingSvc, err := pricingCfg.Configure(); err != nil {
				return goerr.Wrap(err, "failed to configure pricing service")
			} else if pricingSvc != nil {
				ucOpts = append(ucOpts, usecase.WithPricingService(pricingSvc))
			}

			uc := usecase.New(repo, ucOpts...)

			outcome, err := uc.RunCommand(ctx, text, ectx)
			if err != nil {
				return goerr.Wrap(err, "failed to run command")
			}

			printOutcome(outcome)
			return nil
		},
	}
}

func buildExecContext(projectID, selected string) (usecase.ExecContext, error) {
	ectx := usecase.ExecContext{Source: types.SourceCLI}

	if projectID != "" {
		id, err := strconv.ParseInt(projectID, 10, 64)
		if err != nil {
			return ectx, goerr.Wrap(err, "invalid project-id", goerr.V("value", projectID))
		}
		ectx.ProjectID = id
	}

	if selected != "" {
		for _, part := range strings.Split(selected, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return ectx, goerr.Wrap(err, "invalid item ID in selection", goerr.V("value", part))
			}
			ectx.SelectedItemIDs = append(ectx.SelectedItemIDs, id)
		}
	}

	return ectx, nil
}

func printOutcome(outcome *usecase.CommandOutcome) {
	if !outcome.Parse.Success {
		msg := outcome.Parse.MissingInfo
		if msg == "" {
			msg = outcome.Parse.Error
		}
		for _, line := range strings.Split(msg, "\n") {
			color.Yellow("%s", line)
		}
		return
	}

	for _, res := range outcome.Results {
		if res.Success {
			color.Green("✓ %s", res.Message)
		} else {
			color.Red("✗ %s", res.Message)
		}
		if res.NavigateTo != "" {
			color.Cyan("  → %s", res.NavigateTo)
		}
	}

	if outcome.LogID != "" {
		color.White("log: %s", outcome.LogID)
	}
}
