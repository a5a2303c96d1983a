package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/reaandrew/findingsexport/config"
	"github.com/reaandrew/findingsexport/pipeline"
	"github.com/reaandrew/findingsexport/utils"
	log "github.com/sirupsen/logrus"
)

// LambdaResponse summarises a scheduled run.
type LambdaResponse struct {
	RunId       string `json:"runId"`
	Findings    int    `json:"findings"`
	Destination string `json:"destination"`
}

// Handler runs one export for a scheduled EventBridge invocation. The config
// comes from CONFIG_PATH, if set, plus the environment. Without a config file
// or LOG_FORMAT, logs are JSON.
func Handler(ctx context.Context, event events.CloudWatchEvent) (LambdaResponse, error) {
	return handle(ctx, event, NewRunner(), os.LookupEnv)
}

func handle(ctx context.Context, event events.CloudWatchEvent, runner Runner, lookup config.LookupFunc) (LambdaResponse, error) {
	log.WithFields(log.Fields{
		"event_id":    event.ID,
		"detail_type": event.DetailType,
	}).Info("Received scheduled event")

	path, _ := lookup("CONFIG_PATH")
	cfg, err := config.LoadFromEnvironment(path, lookup)
	if err != nil {
		return LambdaResponse{}, err
	}
	if _, set := lookup("LOG_FORMAT"); !set && path == "" {
		cfg.LogFormat = "json"
	}

	closer, err := utils.ConfigureLogging(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return LambdaResponse{}, err
	}
	defer func() {
		closer.Close()
		log.SetOutput(os.Stderr)
	}()

	result, err := runner.Run(ctx, cfg)
	if err != nil {
		log.Errorf("Export failed: %v", err)
		return LambdaResponse{}, err
	}
	return toLambdaResponse(result), nil
}

func toLambdaResponse(result pipeline.Result) LambdaResponse {
	return LambdaResponse{
		RunId:       result.RunId,
		Findings:    result.Rows,
		Destination: result.Destination,
	}
}
