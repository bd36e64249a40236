package shell

import (
	"fmt"
	"strings"
)

const (
	// DefaultMaxTokens bounds the number of tokens accepted per line when
	// the caller doesn't supply a limit.
	DefaultMaxTokens = 64

	// DefaultMaxLineLength bounds the raw line length in bytes.
	DefaultMaxLineLength = 1024
)

// TooManyTokensError is returned when a line splits into more tokens than
// the configured limit. Lines are rejected outright rather than silently
// truncated.
type TooManyTokensError struct {
	Limit int
}

func (e *TooManyTokensError) Error() string {
	return fmt.Sprintf("too many tokens (limit %d)", e.Limit)
}

// LineTooLongError is returned for input lines longer than the configured
// maximum.
type LineTooLongError struct {
	Limit int
}

func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("line too long (limit %d bytes)", e.Limit)
}

// Tokenize splits a raw input line into whitespace delimited tokens.
//
// There is no quoting, escaping, or globbing: operators are significant only
// when they appear as standalone tokens, so "file.txt>out" remains a single
// token. An empty or all-whitespace line yields no tokens and no error.
func Tokenize(line string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultMaxTokens
	}

	tokens := strings.Fields(line)
	if len(tokens) > limit {
		return nil, &TooManyTokensError{Limit: limit}
	}

	return tokens, nil
}

// CheckLineLength validates the raw line against the configured maximum.
func CheckLineLength(line string, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxLineLength
	}

	if len(line) > limit {
		return &LineTooLongError{Limit: limit}
	}

	return nil
}
