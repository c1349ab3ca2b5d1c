package conf

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// GetPgConnStrFromEnv builds a libpq style connection string. On localhost
// the password is read from POSTGRES_PW, elsewhere it is fetched from the
// AWS secret named by POSTGRES_PASSWORD_SECRET_NAME.
func GetPgConnStrFromEnv() string {
	host := os.Getenv("POSTGRES_HOST")
	var pw string
	if host == "localhost" || host == "" {
		pw = os.Getenv("POSTGRES_PW")
	} else {
		secretName := os.Getenv("POSTGRES_PASSWORD_SECRET_NAME")
		secretValue, err := getSecretFromAWS(secretName)
		if err != nil {
			panic(fmt.Sprintf("failed to get postgres password from AWS: %v", err))
		}
		pw, err = parsePasswordSecret(secretValue)
		if err != nil {
			panic(fmt.Sprintf("failed to parse postgres password secret: %v", err))
		}
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		quoteConnValue(getEnvOr("POSTGRES_HOST", "localhost")),
		quoteConnValue(getEnvOr("POSTGRES_PORT", "5432")),
		quoteConnValue(os.Getenv("POSTGRES_USER")),
		quoteConnValue(pw),
		quoteConnValue(os.Getenv("POSTGRES_DB")),
		quoteConnValue(getEnvOr("POSTGRES_SSLMODE", "disable")),
	)
}

// quoteConnValue single-quotes a keyword/value connection string value,
// escaping backslashes and quotes.
func quoteConnValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func parsePasswordSecret(secretValue string) (string, error) {
	var secret struct {
		Password string `json:"password"`
	}
	if err := json.Unmarshal([]byte(secretValue), &secret); err != nil {
		return "", err
	}
	if secret.Password == "" {
		return "", fmt.Errorf("secret has no password field")
	}
	return secret.Password, nil
}

func getSecretFromAWS(secretName string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return "", err
	}
	svc := secretsmanager.NewFromConfig(cfg)
	result, err := svc.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(result.SecretString), nil
}
