package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes prompt to w and reads one line from r, repeating until the
// validator accepts it. The reader is shared with the caller so input
// buffered past the line is not lost.
func Prompt(r *bufio.Reader, w io.Writer, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		_, err := io.WriteString(w, prompt)
		if err != nil {
			return "", err
		}

		input, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			return "", err
		}
		input = strings.TrimSpace(input)

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				io.WriteString(w, msg)

				tries++
				if config.tries > 0 && config.tries == tries {
					io.WriteString(w, "too many tries\n")
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return input, nil
	}
}

// NotEmpty rejects blank input.
func NotEmpty(msg string) promptValidator {
	return func(s string) (bool, string) {
		if s == "" {
			return false, msg
		}
		return true, ""
	}
}
