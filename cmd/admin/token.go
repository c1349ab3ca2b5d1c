package main

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/programme-lv/contest/auth"
	"github.com/programme-lv/contest/conf"
	"github.com/programme-lv/contest/subm/submddbrepo"
	"github.com/programme-lv/contest/subm/submstore"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var userID, username string
	var ttl time.Duration
	var tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for local testing with JWT_KEY",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf.Read()
			if len(cfg.JwtKey) == 0 {
				return fmt.Errorf("JWT_KEY is not set")
			}
			u, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid user uuid: %w", err)
			}
			token, err := auth.GenerateJWT(username, u, ttl, cfg.JwtKey)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Println(token)
			return nil
		},
	}
	tokenCmd.Flags().StringVarP(&userID, "user", "u", "", "User uuid (required)")
	tokenCmd.Flags().StringVar(&username, "username", "", "Username claim")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	tokenCmd.MarkFlagRequired("user")
	return tokenCmd
}

func newDdbCmd() *cobra.Command {
	var ddbCmd = &cobra.Command{
		Use:   "ddb",
		Short: "DynamoDB submission store maintenance",
	}

	var endpoint string
	var createTableCmd = &cobra.Command{
		Use:   "create-table",
		Short: "Create the submissions table named by DDB_SUBM_TABLE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf.Read()
			client, err := submstore.NewDynamoDbClient(cmd.Context(), cfg.AwsRegion)
			if err != nil {
				return err
			}
			if endpoint != "" {
				client = dynamodb.New(client.Options(), func(o *dynamodb.Options) {
					o.BaseEndpoint = &endpoint
				})
			}
			if err := submddbrepo.CreateTable(cmd.Context(), client, cfg.DdbSubmTable); err != nil {
				return err
			}
			log.Info().Str("table", cfg.DdbSubmTable).Msg("table created")
			return nil
		},
	}
	createTableCmd.Flags().StringVar(&endpoint, "endpoint", "", "Custom endpoint, e.g. DynamoDB Local")

	ddbCmd.AddCommand(createTableCmd)
	return ddbCmd
}
