package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/generator"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	root := NewRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantLines int
		wantLen   int
		charset   string
	}{
		{
			name:      "defaults",
			args:      []string{"generate"},
			wantLines: 1,
			wantLen:   16,
		},
		{
			name:      "count and length",
			args:      []string{"generate", "-c", "5", "-l", "20"},
			wantLines: 5,
			wantLen:   20,
		},
		{
			name:      "digits only clamped up",
			args:      []string{"generate", "--length", "3", "--upper=false", "--lower=false", "--symbols=false"},
			wantLines: 1,
			wantLen:   8,
			charset:   "0123456789",
		},
		{
			name:      "length beyond int range",
			args:      []string{"generate", "--length", "99999999999999999999"},
			wantLines: 1,
			wantLen:   32,
		},
		{
			name:      "negative length beyond int range",
			args:      []string{"generate", "--length=-99999999999999999999"},
			wantLines: 1,
			wantLen:   8,
		},
		{
			name:      "crypto source clamped down",
			args:      []string{"generate", "--source", "crypto", "-l", "100"},
			wantLines: 1,
			wantLen:   32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)

			lines := strings.Split(strings.TrimSpace(stdout), "\n")
			require.Len(t, lines, tt.wantLines)
			alphabet := generator.DefaultOptions().Alphabet()
			if tt.charset != "" {
				alphabet = tt.charset
			}
			for _, line := range lines {
				assert.Len(t, line, tt.wantLen)
				assert.Empty(t, strings.Trim(line, alphabet), "unexpected characters in %q", line)
			}
		})
	}
}

func TestGenerateCommandNoClass(t *testing.T) {
	stdout, stderr, err := execute(t, "", "generate", "--upper=false", "--lower=false", "--digits=false", "--symbols=false")

	assert.ErrorIs(t, err, generator.ErrNoCharacterClassSelected)
	assert.True(t, Reported(err), "the notification already told the user")
	assert.Empty(t, stdout)
	assert.Equal(t, 1, strings.Count(strings.ToLower(stderr), "select at least one character type"), stderr)
}

func TestGenerateCommandCopy(t *testing.T) {
	stdout, stderr, err := execute(t, "", "generate", "--copy", "--clipboard", "memory")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(stdout), 16)
	assert.Contains(t, stderr, "Password copied successfully.")

	_, stderr, err = execute(t, "", "generate", "--copy", "--clipboard", "none")
	assert.ErrorIs(t, err, clipboard.ErrUnavailable)
	assert.True(t, Reported(err))
	assert.Contains(t, stderr, "Failed to copy password to clipboard.")
}

func TestGenerateCommandInvalidInput(t *testing.T) {
	_, _, err := execute(t, "", "generate", "--count", "0")
	assert.Error(t, err)
	assert.False(t, Reported(err))

	_, _, err = execute(t, "", "generate", "--length", "ten")
	assert.ErrorContains(t, err, generator.ErrInvalidLength.Error())

	_, _, err = execute(t, "", "generate", "--source", "dice")
	assert.ErrorIs(t, err, generator.ErrUnknownSource)

	_, _, err = execute(t, "", "generate", "--clipboard", "fax")
	assert.ErrorIs(t, err, clipboard.ErrUnknownClipboard)
}
