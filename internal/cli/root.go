package cli

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"researchconnect/internal/api"
	"researchconnect/internal/config"
	"researchconnect/internal/domain"
	"researchconnect/internal/logger"
)

var (
	configPath string
	baseURL    string
	token      string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envBase := os.Getenv("RC_API_BASE_URL")
	envConfig := os.Getenv("RC_CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envToken := os.Getenv("RC_TOKEN")

	cmd := &cobra.Command{
		Use:   "researchconnect",
		Short: "Admin client for the ResearchConnect experiment platform",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", envBase, "API base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&token, "token", envToken, "session token from 'login confirm'")
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newExperimentCmd())
	cmd.AddCommand(newQuestionnaireCmd())
	cmd.AddCommand(newMessageCmd())
	cmd.AddCommand(newExportCmd())
	return cmd
}

// loadConfig reads the config file when present; a missing file falls back
// to defaults so the CLI works with flags alone.
func loadConfig() config.Config {
	if configPath == "" {
		return config.Config{}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}
	}
	return cfg
}

// buildClient assembles the API client from flags and config. requireAuth
// additionally demands a live session token.
func buildClient(requireAuth bool) (*api.Client, *logger.Logger, error) {
	cfg := loadConfig()

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, nil, err
	}

	base := baseURL
	if base == "" {
		base = cfg.API.BaseURL
	}
	if base == "" {
		return nil, nil, errors.New("no API base URL: set --base-url, RC_API_BASE_URL, or api.baseUrl in config")
	}

	creds := api.Credentials{Token: token}
	if requireAuth {
		if !creds.Set() {
			return nil, nil, domain.ErrNotAuthenticated
		}
		if creds.Expired(time.Now()) {
			return nil, nil, domain.ErrSessionExpired
		}
	}

	client := api.NewClient(base, log,
		api.WithTimeout(config.Duration(cfg.API.Timeout, 30*time.Second)),
		api.WithRetries(cfg.API.Retries),
		api.WithCredentials(creds),
	)
	return client, log, nil
}
