package prompts

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ghterm/ghterm/internal/api"
)

// Prompter reads interactive input from the user
type Prompter interface {
	// Visible prompts with echoed input
	Visible(label string) (string, error)
	// Hidden prompts with masked input
	Hidden(label string) (string, error)
}

// Terminal is a Prompter backed by the process terminal
type Terminal struct {
	in *bufio.Reader
}

// NewTerminal creates a terminal-backed prompter
func NewTerminal() *Terminal {
	return &Terminal{in: bufio.NewReader(os.Stdin)}
}

// Visible prompts for visible input
func (t *Terminal) Visible(label string) (string, error) {
	fmt.Print(label)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Hidden prompts for hidden input
func (t *Terminal) Hidden(label string) (string, error) {
	fmt.Print(label)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println() // Print newline after hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read hidden input: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// RequireVisible prompts until a non-empty value is entered. Empty
// input triggers a retry, never an error.
func RequireVisible(p Prompter, label string) (string, error) {
	for {
		value, err := p.Visible(label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
	}
}

// RequireHidden prompts until a non-empty secret is entered
func RequireHidden(p Prompter, label string) (string, error) {
	for {
		value, err := p.Hidden(label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
	}
}

// TwoFactor returns a callback that blocks on a 2FA prompt until a
// non-empty code is entered. A read failure abandons the attempt by
// returning an empty code.
func TwoFactor(p Prompter) api.TwoFactorFunc {
	return func() string {
		code, err := RequireVisible(p, "Enter 2FA code: ")
		if err != nil {
			return ""
		}
		return code
	}
}
