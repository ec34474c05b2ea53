package algolia

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// mockSecretsManagerClient implements SecretsManagerClient for testing
type mockSecretsManagerClient struct {
	secretValue *string
	err         error
	gotID       string
}

func (m *mockSecretsManagerClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	m.gotID = aws.ToString(params.SecretId)
	if m.err != nil {
		return nil, m.err
	}

	return &secretsmanager.GetSecretValueOutput{
		SecretString: m.secretValue,
	}, nil
}

func TestAWSSecrets(t *testing.T) {
	tests := map[string]struct {
		env         string
		secretValue *string
		err         error
		wantAppID   string
		wantKey     string
		wantErrMsg  string
	}{
		"success": {
			env:         "production",
			secretValue: aws.String(`{"app_id":"test-app-id","write_api_key":"test-api-key"}`),
			wantAppID:   "test-app-id",
			wantKey:     "test-api-key",
		},
		"staging path": {
			env:         "staging",
			secretValue: aws.String(`{"app_id":"staging-app-id","write_api_key":"staging-api-key"}`),
			wantAppID:   "staging-app-id",
			wantKey:     "staging-api-key",
		},
		"get secret error": {
			env:        "production",
			err:        errors.New("secrets manager error"),
			wantErrMsg: "failed to get secret from AWS Secrets Manager at path production/algolia",
		},
		"nil secret string": {
			env:        "production",
			wantErrMsg: "secret at path production/algolia has no string value",
		},
		"invalid json": {
			env:         "production",
			secretValue: aws.String(`{"app_id":"test-app-id","write_api_key":}`),
			wantErrMsg:  "failed to unmarshal secret JSON at path production/algolia",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			client := &mockSecretsManagerClient{secretValue: tt.secretValue, err: tt.err}

			secrets, err := AWSSecrets(context.Background(), client, tt.env)()

			if want := tt.env + "/algolia"; client.gotID != want {
				t.Errorf("Expected secret id %q, got %q", want, client.gotID)
			}

			if tt.wantErrMsg != "" {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErrMsg) {
					t.Errorf("Expected error to contain %q, got %q", tt.wantErrMsg, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if secrets.AppID != tt.wantAppID {
				t.Errorf("Expected AppID %q, got %q", tt.wantAppID, secrets.AppID)
			}
			if secrets.WriteApiKey != tt.wantKey {
				t.Errorf("Expected WriteApiKey %q, got %q", tt.wantKey, secrets.WriteApiKey)
			}
		})
	}
}

func TestAWSSecretsFromARN(t *testing.T) {
	arn := "arn:aws:secretsmanager:us-east-1:123456789012:secret:algolia-AbCdEf"
	client := &mockSecretsManagerClient{
		secretValue: aws.String(`{"app_id":"arn-app","write_api_key":"arn-key"}`),
	}

	secrets, err := AWSSecretsFromARN(context.Background(), client, arn)()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if client.gotID != arn {
		t.Errorf("Expected secret id %q, got %q", arn, client.gotID)
	}
	if secrets.AppID != "arn-app" || secrets.WriteApiKey != "arn-key" {
		t.Errorf("Unexpected secrets %+v", secrets)
	}

	client = &mockSecretsManagerClient{}
	_, err = AWSSecretsFromARN(context.Background(), client, arn)()
	if err == nil || !strings.Contains(err.Error(), "with ARN "+arn+" has no string value") {
		t.Errorf("Expected missing value error, got %v", err)
	}
}
