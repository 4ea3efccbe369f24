// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"audioscout/internal/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Verify API credentials by requesting a token",
	Long: `Auth performs one client-credentials grant against the token endpoint
and reports the token lifetime. It does not store the token; research
requests a fresh one per run.`,
	RunE: runAuth,
}

func runAuth(cmd *cobra.Command, args []string) error {
	creds := resolveCredentials(cmd)
	cfg := resolveConfig(cmd)

	client := &http.Client{Timeout: cfg.Search.Timeout}
	session, err := auth.Exchange(context.Background(), client, creds)
	if err != nil {
		return err
	}

	fmt.Printf("Credentials accepted. Token expires %s (in %s).\n",
		session.ExpiresAt.Format(time.RFC3339),
		time.Until(session.ExpiresAt).Round(time.Second))
	return nil
}

func init() {
	rootCmd.AddCommand(authCmd)
}
