package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type SsmApi interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ParameterStore reads decrypted values from SSM Parameter Store.
type ParameterStore struct {
	Client SsmApi
}

func NewParameterStore(cfg aws.Config) ParameterStore {
	return ParameterStore{Client: ssm.NewFromConfig(cfg)}
}

// Get retrieves the named parameter, decrypting SecureString values.
func (s ParameterStore) Get(ctx context.Context, name string) (string, error) {
	input := &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	}

	result, err := s.Client.GetParameter(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve parameter '%s': %w", name, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", fmt.Errorf("parameter '%s' has no value", name)
	}

	return *result.Parameter.Value, nil
}
