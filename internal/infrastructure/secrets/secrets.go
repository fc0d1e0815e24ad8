package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.uber.org/zap"

	"stockledger/internal/config"
)

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// DatabaseSecret is the JSON layout of an RDS-style credentials secret.
type DatabaseSecret struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	DBName   string `json:"dbname"`
}

func NewClient(ctx context.Context, region string) (*secretsmanager.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

func FetchDatabaseSecret(ctx context.Context, client SecretsClient, name string) (*DatabaseSecret, error) {
	resp, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &name,
	})
	if err != nil {
		return nil, fmt.Errorf("getting secret %s: %w", name, err)
	}
	if resp.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", name)
	}

	var secret DatabaseSecret
	if err := json.Unmarshal([]byte(*resp.SecretString), &secret); err != nil {
		return nil, fmt.Errorf("decoding secret %s: %w", name, err)
	}

	return &secret, nil
}

// Apply overrides the connection fields the secret defines. Empty fields keep
// the configured value.
func (s DatabaseSecret) Apply(cfg config.DatabaseConfig) config.DatabaseConfig {
	if s.Username != "" {
		cfg.User = s.Username
	}
	if s.Password != "" {
		cfg.Password = s.Password
	}
	if s.Host != "" {
		cfg.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Port = s.Port
	}
	if s.DBName != "" {
		cfg.Name = s.DBName
	}
	return cfg
}

// ResolveDatabaseConfig overlays the secret named by cfg.SecretName onto cfg.
// A config without a secret name is returned unchanged.
func ResolveDatabaseConfig(ctx context.Context, client SecretsClient, cfg config.DatabaseConfig, logger *zap.Logger) (config.DatabaseConfig, error) {
	name := cfg.SecretName
	if name == "" {
		return cfg, nil
	}

	secret, err := FetchDatabaseSecret(ctx, client, name)
	if err != nil {
		return cfg, err
	}

	logger.Info("database credentials loaded from secret", zap.String("secret", name))
	return secret.Apply(cfg), nil
}
