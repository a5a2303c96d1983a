package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/sirupsen/logrus"
)

var Version string

func main() {
	if _, exists := os.LookupEnv("AWS_LAMBDA_FUNCTION_NAME"); exists {
		log.SetFormatter(&log.JSONFormatter{})
		log.Info("Starting in Lambda mode")
		lambda.Start(Handler)
		return
	}

	cli := &Cli{}
	if err := cli.Execute(); err != nil {
		log.Errorf("Error executing command: %v", err)
		os.Exit(1)
	}
}
