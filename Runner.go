package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/reaandrew/findingsexport/config"
	"github.com/reaandrew/findingsexport/pipeline"
	"github.com/reaandrew/findingsexport/reporters"
	"github.com/reaandrew/findingsexport/sources"
	log "github.com/sirupsen/logrus"
)

// Runner builds the source and reporter for a configuration and runs the
// pipeline once. The constructors are fields so tests can swap in fakes.
type Runner struct {
	Build       func(ctx context.Context, cfg config.Config) (pipeline.FindingSource, reporters.ReporterFactory, error)
	NewRunId    func() string
	LogFinished func(result pipeline.Result)
}

func NewRunner() Runner {
	return Runner{
		Build:    defaultSource,
		NewRunId: func() string { return uuid.New().String() },
		LogFinished: func(result pipeline.Result) {
			log.WithFields(log.Fields{
				"run_id":      result.RunId,
				"findings":    result.Findings,
				"destination": result.Destination,
			}).Info("Export finished")
		},
	}
}

func defaultSource(ctx context.Context, cfg config.Config) (pipeline.FindingSource, reporters.ReporterFactory, error) {
	awsConfig, err := sources.LoadAwsConfig(ctx, sources.ClientOptions{
		Region:  cfg.Aws.Region,
		Profile: cfg.Aws.Profile,
	})
	if err != nil {
		return nil, reporters.ReporterFactory{}, err
	}
	client := sources.NewSecurityHubClient(awsConfig, cfg.Aws.Endpoint)
	return sources.NewSecurityHubSource(client, cfg.Aws.PageSize), reporters.NewReporterFactory(awsConfig), nil
}

func (r Runner) Run(ctx context.Context, cfg config.Config) (pipeline.Result, error) {
	if err := cfg.Validate(); err != nil {
		return pipeline.Result{}, err
	}

	source, factory, err := r.Build(ctx, cfg)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("failed to create source: %w", err)
	}

	reporter, err := factory.CreateReporter(ctx, cfg)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("failed to create reporter: %w", err)
	}

	result, err := pipeline.New(r.NewRunId(), source, reporter, cfg.Criteria).Run(ctx)
	if err != nil {
		return result, err
	}
	if r.LogFinished != nil {
		r.LogFinished(result)
	}
	return result, nil
}
