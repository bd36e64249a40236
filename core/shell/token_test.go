package shell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		expected []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \t  ", nil},
		{"single", "ls", []string{"ls"}},
		{"args", "ls -l /tmp", []string{"ls", "-l", "/tmp"}},
		{"run of whitespace", "echo   hello\tworld", []string{"echo", "hello", "world"}},
		{"standalone operators", "cat < in | wc -l > out &", []string{"cat", "<", "in", "|", "wc", "-l", ">", "out", "&"}},
		{"embedded operator is one token", "echo file.txt>out", []string{"echo", "file.txt>out"}},
		{"no quoting", `echo "hello world"`, []string{"echo", `"hello`, `world"`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Tokenize(tc.line, 0)

			assert.NoError(t, err)
			if tc.expected == nil {
				assert.Empty(t, tokens)
			} else {
				assert.Equal(t, tc.expected, tokens)
			}
		})
	}
}

func TestTokenizeLimit(t *testing.T) {
	line := strings.TrimSpace(strings.Repeat("x ", 10))

	t.Run("at the limit", func(t *testing.T) {
		tokens, err := Tokenize(line, 10)
		assert.NoError(t, err)
		assert.Len(t, tokens, 10)
	})

	t.Run("over the limit", func(t *testing.T) {
		_, err := Tokenize(line, 9)

		var tooMany *TooManyTokensError
		assert.ErrorAs(t, err, &tooMany)
		assert.Equal(t, 9, tooMany.Limit)
	})
}

func TestCheckLineLength(t *testing.T) {
	assert.NoError(t, CheckLineLength("echo hello", 99))

	err := CheckLineLength(strings.Repeat("a", 100), 99)

	var tooLong *LineTooLongError
	assert.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 99, tooLong.Limit)
}
