package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghterm/ghterm/internal/errors"
	"github.com/ghterm/ghterm/internal/output"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize with GitHub and store credentials",
	Long: `Run the interactive authorization flow and store the result.

Prompts for your GitHub login and password, creates a personal access
token scoped to user, repo and gist, and writes login, password and token
to ~/.githubconfig. Any previously stored credentials are replaced.

Accounts with two-factor authentication enabled are prompted for a 2FA
code when GitHub requests one.`,
	Args: cobra.NoArgs,
	Run:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) {
	a := newApp()

	sess, err := a.auth.Reauthorize(cmd.Context())
	if err != nil {
		errors.ExitWithCode(errors.ExitAuthError, err.Error())
	}

	output.PrintSuccess(fmt.Sprintf("Logged in as %s", sess.Login))
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
