package tui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Password reads a secret from stdin without echoing it. Outside a
// terminal it falls back to a plain buffered read so piped input still
// works. Empty input counts as cancellation.
func Password(prompt string) (string, error) {
	fmt.Print(prompt + ": ")

	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read secret input: %w", err)
		}
		return secretValue(string(raw))
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read secret input: %w", err)
	}
	return secretValue(line)
}

func secretValue(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ErrCancelled
	}
	return value, nil
}
