package commands

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ghterm/ghterm/internal/config"
	"github.com/ghterm/ghterm/internal/errors"
)

var flagBrowser bool

var viewCmd = &cobra.Command{
	Use:   "view <index>",
	Short: "Show a recently listed url by index",
	Long: `Resolve a 1-based index against the url history saved by the last
listing command.

By default entries are printed in short form with the https://github.com/
prefix stripped. With --browser the full urls are kept, suitable for
opening in a web browser.`,
	Args: cobra.ExactArgs(1),
	Run:  runView,
}

func runView(cmd *cobra.Command, args []string) {
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		errors.ExitWithCode(errors.ExitInvalidArguments, fmt.Sprintf("index must be a positive number, got %q", args[0]))
	}

	a := newApp()

	history, err := a.history.Load(flagBrowser)
	if err != nil {
		if stderrors.Is(err, config.ErrNotFound) || stderrors.Is(err, config.ErrMissingSection) || stderrors.Is(err, config.ErrMissingKey) {
			errors.ExitWithCode(errors.ExitNotFound, "no url history yet, run a listing command first")
		}
		errors.ExitWithError(err, "failed to load url history")
	}

	if index > len(history) {
		errors.ExitWithCode(errors.ExitInvalidArguments, fmt.Sprintf("index %d out of range, history has %d entries", index, len(history)))
	}

	fmt.Println(history[index-1])
}

func init() {
	viewCmd.Flags().BoolVar(&flagBrowser, "browser", false, "Keep full urls for opening in a browser")
	rootCmd.AddCommand(viewCmd)
}
