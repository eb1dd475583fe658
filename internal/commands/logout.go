package commands

import (
	"github.com/spf13/cobra"

	"github.com/ghterm/ghterm/internal/errors"
	"github.com/ghterm/ghterm/internal/output"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials",
	Long: `Remove stored credentials from ~/.githubconfig.

This operation is idempotent - it succeeds even if no credentials are stored.`,
	Args: cobra.NoArgs,
	Run:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) {
	a := newApp()

	if err := a.auth.Logout(); err != nil {
		errors.ExitWithError(err, "failed to remove credentials")
	}

	output.PrintSuccess("Logged out successfully")
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
