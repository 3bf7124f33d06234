package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"family-calendar/internal/auth"

	"golang.org/x/term"
)

// HashPassword handles the hash-password subcommand and returns the exit code.
// On a terminal the password is read without echo; piped input is read line
// by line.
func HashPassword(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envLine := fs.Bool("env", false, "Print as APP_PASSWORD_HASH line for a .env file")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: family-calendar hash-password [OPTIONS]\n\n")
		fmt.Fprintf(stderr, "Prints an Argon2id hash for APP_PASSWORD_HASH.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	read := newPasswordReader(stdin, stderr)

	password, err := read("Enter password:   ")
	if err != nil {
		fmt.Fprintf(stderr, "Error reading password: %v\n", err)
		return 1
	}
	confirm, err := read("Confirm password: ")
	if err != nil {
		fmt.Fprintf(stderr, "Error reading password confirmation: %v\n", err)
		return 1
	}

	if password == "" {
		fmt.Fprintf(stderr, "Password cannot be empty\n")
		return 1
	}
	if password != confirm {
		fmt.Fprintf(stderr, "Passwords do not match\n")
		return 1
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *envLine {
		// single quotes keep godotenv from expanding the $ separators
		fmt.Fprintf(stdout, "APP_PASSWORD_HASH='%s'\n", hash)
	} else {
		fmt.Fprintln(stdout, hash)
	}
	return 0
}

func newPasswordReader(stdin io.Reader, prompt io.Writer) func(string) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		return func(label string) (string, error) {
			fmt.Fprint(prompt, label)
			raw, err := term.ReadPassword(fd)
			fmt.Fprintln(prompt)
			return string(raw), err
		}
	}

	scanner := bufio.NewScanner(stdin)
	return func(label string) (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", errors.New("unexpected end of input")
		}
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
}
