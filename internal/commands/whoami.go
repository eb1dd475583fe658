package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghterm/ghterm/internal/errors"
	"github.com/ghterm/ghterm/internal/output"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated GitHub login",
	Long: `Authenticate with the stored credentials and print the account login.

When no credentials are stored yet, the interactive authorization flow
runs first, exactly as on any other command.`,
	Args: cobra.NoArgs,
	Run:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) {
	a := newApp()

	sess, err := a.auth.Authenticate(cmd.Context())
	if err != nil {
		output.PrintError("Not authenticated")
		errors.ExitWithCode(errors.ExitAuthError, err.Error())
	}

	output.PrintSuccess(fmt.Sprintf("Authenticated as %s", sess.Login))
	if sess.FeedURL != "" {
		fmt.Println("Activity feed available (password-based session)")
	}
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
