package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghterm/ghterm/internal/api"
	"github.com/ghterm/ghterm/internal/auth"
	"github.com/ghterm/ghterm/internal/config"
	"github.com/ghterm/ghterm/internal/errors"
	"github.com/ghterm/ghterm/internal/logging"
	"github.com/ghterm/ghterm/internal/prompts"
	"github.com/ghterm/ghterm/internal/urls"
)

var (
	// Global flags
	flagVerbose bool
	flagTimeout time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ghterm",
	Short: "GitHub terminal client",
	Long: `ghterm is a command-line client for GitHub.

On first use it walks through an interactive authorization and stores the
resulting credentials in ~/.githubconfig. Recently viewed urls are kept in
~/.githubconfigurl and can be reopened by index with 'ghterm view'.`,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "API request timeout (default 30s, or GHTERM_API_TIMEOUT)")
}

// app bundles the wired collaborators each command needs
type app struct {
	settings *config.Settings
	logger   *slog.Logger
	store    *config.Store
	auth     *auth.Authenticator
	history  *urls.History
}

// newApp loads settings and wires up the store, API service and
// authenticator. Exits on invalid settings.
func newApp() *app {
	settings, err := config.Load()
	if err != nil {
		errors.ExitWithError(err, "failed to load settings")
	}

	if flagVerbose {
		settings.Logging.Level = "debug"
	}
	if flagTimeout > 0 {
		settings.API.Timeout = flagTimeout
	}

	if err := settings.Validate(); err != nil {
		errors.ExitWithCode(errors.ExitInvalidArguments, err.Error())
	}

	logger := logging.New(settings.Logging.Level, settings.Logging.Format)
	store := config.NewStore(settings.Home, logger)
	svc := api.NewGitHub(settings.API.BaseURL, settings.API.Timeout, logger)
	prompter := prompts.NewTerminal()

	return &app{
		settings: settings,
		logger:   logger,
		store:    store,
		auth:     auth.New(store, svc, prompter, logger),
		history:  urls.New(store, settings.History.Max),
	}
}
