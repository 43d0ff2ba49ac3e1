package cli

import (
	"context"

	"github.com/m-mizutani/aiforge/pkg/adapter"
	"github.com/m-mizutani/aiforge/pkg/client"
	"github.com/m-mizutani/aiforge/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	// Server
	addr     string
	project  string
	database string
	logLevel string

	// Gemini
	geminiAPIKey string
	geminiModel  string

	// Client
	baseURL string
	token   string
}

// serverFlags returns flags for running the API server with destination config
func serverFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address",
			Value:       ":8080",
			Sources:     cli.EnvVars("AIFORGE_ADDR"),
			Destination: &cfg.addr,
		},
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("AIFORGE_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// llmFlags returns flags for Gemini configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key",
			Sources:     cli.EnvVars("GOOGLE_API_KEY"),
			Destination: &cfg.geminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Generative model name",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("AIFORGE_GEMINI_MODEL"),
			Destination: &cfg.geminiModel,
		},
	}
}

// clientFlags returns flags for commands that talk to a running server
func clientFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL of the aiforge server",
			Value:       "http://localhost:8080",
			Sources:     cli.EnvVars("AIFORGE_BASE_URL"),
			Destination: &cfg.baseURL,
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Bearer credential for the API",
			Sources:     cli.EnvVars("AIFORGE_TOKEN"),
			Destination: &cfg.token,
		},
	}
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (*repository.Firestore, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}

	return repo, nil
}

// newGemini creates a new Gemini adapter
func (cfg *config) newGemini(ctx context.Context) (*adapter.GeminiClient, error) {
	if cfg.geminiAPIKey == "" {
		return nil, goerr.New("gemini-api-key is required")
	}

	gemini, err := adapter.NewGemini(ctx, cfg.geminiAPIKey,
		adapter.WithGenerativeModel(cfg.geminiModel))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gemini client")
	}

	return gemini, nil
}

// newVerifier creates the Firebase token verifier
func (cfg *config) newVerifier(ctx context.Context) (adapter.TokenVerifier, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}

	verifier, err := adapter.NewFirebaseVerifier(ctx, cfg.project)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create token verifier")
	}

	return verifier, nil
}

// newClient creates an API client for client-side commands
func (cfg *config) newClient() (*client.Client, error) {
	if cfg.token == "" {
		return nil, goerr.New("token is required")
	}

	return client.New(cfg.baseURL, cfg.token), nil
}
