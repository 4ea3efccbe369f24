// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the audioscout CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"audioscout/internal/auth"
	"audioscout/internal/secrets"
	"audioscout/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedCreds holds credentials loaded from .secrets/ at startup. Flags
// and environment variables take precedence over them.
var loadedCreds auth.Credentials

// rootCmd is the base command for the audioscout CLI.
var rootCmd = &cobra.Command{
	Use:   "audioscout",
	Short: "Audiobook keyword market research against the Spotify catalog",
	Long: `audioscout researches audiobook market keywords. It queries the Spotify
catalog search API once per keyword, derives supply, demand, and popularity
metrics, compares them against the previous run, and ranks keyword
opportunities.

Credentials come from flags, AUDIOSCOUT_CLIENT_ID / AUDIOSCOUT_CLIENT_SECRET
environment variables, or .secrets/spotify-client-id and
.secrets/spotify-client-secret files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		creds, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedCreds = creds
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./audioscout.yaml or ~/.config/audioscout/config.yaml)")
	rootCmd.PersistentFlags().String("client-id", "", "Spotify API client id")
	rootCmd.PersistentFlags().String("client-secret", "", "Spotify API client secret")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the run history database")
}

func initConfig() {
	// .env values feed viper's AutomaticEnv lookup below.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("audioscout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "audioscout"))
		}
	}

	viper.SetEnvPrefix("AUDIOSCOUT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveCredentials picks credentials in precedence order: flags,
// environment (via viper), then .secrets/ files.
func resolveCredentials(cmd *cobra.Command) auth.Credentials {
	creds := auth.Credentials{}
	creds.ClientID, _ = cmd.Flags().GetString("client-id")
	creds.ClientSecret, _ = cmd.Flags().GetString("client-secret")

	if creds.ClientID == "" {
		creds.ClientID = viper.GetString("client_id")
	}
	if creds.ClientSecret == "" {
		creds.ClientSecret = viper.GetString("client_secret")
	}

	if creds.ClientID == "" {
		creds.ClientID = loadedCreds.ClientID
	}
	if creds.ClientSecret == "" {
		creds.ClientSecret = loadedCreds.ClientSecret
	}
	return creds
}

// resolveConfig builds the runtime configuration from defaults overlaid
// with viper settings and persistent flags.
func resolveConfig(cmd *cobra.Command) types.Config {
	cfg := types.Defaults()

	if v := viper.GetDuration("search.timeout"); v > 0 {
		cfg.Search.Timeout = v
	}
	if v := viper.GetString("search.user_agent"); v != "" {
		cfg.Search.UserAgent = v
	}
	if v := viper.GetInt("search.limit"); v > 0 {
		cfg.Search.Limit = v
	}
	if v := viper.GetString("search.market"); v != "" {
		cfg.Search.Market = v
	}
	if viper.IsSet("search.request_delay") {
		cfg.Search.RequestDelay = viper.GetDuration("search.request_delay")
	}
	if v := viper.GetString("store.data_dir"); v != "" {
		cfg.Store.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.Store.DataDir = v
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
