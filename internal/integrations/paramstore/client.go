package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmAPI is the subset of *ssm.Client used here.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	GetParameters(ctx context.Context, in *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

// maxBatch is the SSM limit on names per GetParameters call.
const maxBatch = 10

// Client reads knowledge base content and contact overrides from SSM.
type Client struct {
	api ssmAPI
}

// New creates a Client with the given SSM API implementation.
func New(api ssmAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	return &Client{api: api}, nil
}

// GetParameter returns the decrypted value of a single parameter.
func (c *Client) GetParameter(ctx context.Context, name string) (string, error) {
	if c.api == nil {
		return "", errors.New("paramstore: client not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("paramstore: name is required")
	}

	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("paramstore: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", errors.New("paramstore: parameter missing value")
	}
	return *out.Parameter.Value, nil
}

// GetParameters fetches names in batches and returns the values keyed by
// name. Names SSM reports as invalid are returned separately rather than as
// an error, since callers treat them as optional.
func (c *Client) GetParameters(ctx context.Context, names ...string) (map[string]string, []string, error) {
	if c.api == nil {
		return nil, nil, errors.New("paramstore: client not initialized")
	}
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		return nil, nil, errors.New("paramstore: at least one name is required")
	}

	values := make(map[string]string, len(cleaned))
	var invalid []string
	for start := 0; start < len(cleaned); start += maxBatch {
		end := min(start+maxBatch, len(cleaned))
		out, err := c.api.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          cleaned[start:end],
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("paramstore: get parameters: %w", err)
		}
		if out == nil {
			continue
		}
		for _, p := range out.Parameters {
			if p.Name == nil || p.Value == nil {
				continue
			}
			values[*p.Name] = *p.Value
		}
		invalid = append(invalid, out.InvalidParameters...)
	}
	return values, invalid, nil
}
