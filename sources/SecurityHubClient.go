package sources

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/securityhub"
)

type ClientOptions struct {
	Region   string
	Profile  string
	Endpoint string
}

// LoadAwsConfig resolves credentials through the default provider chain.
func LoadAwsConfig(ctx context.Context, opts ClientOptions) (aws.Config, error) {
	var loadOptions []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOptions = append(loadOptions, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOptions = append(loadOptions, config.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return cfg, nil
}

// NewSecurityHubClient creates a Security Hub client. Endpoint overrides the
// resolved service endpoint, which is what LocalStack needs.
func NewSecurityHubClient(cfg aws.Config, endpoint string) *securityhub.Client {
	return securityhub.NewFromConfig(cfg, func(o *securityhub.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}
