package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand(&bytes.Buffer{}, &bytes.Buffer{})

	assert.Equal(t, "schema-validator", root.Name)
	assert.NotNil(t, root.Flags)

	expectedCommands := []string{"validate", "rules", "version"}
	for _, cmdName := range expectedCommands {
		assert.Contains(t, root.Subcommands, cmdName, "Expected subcommand %s to be registered", cmdName)
	}
	assert.Equal(t, len(expectedCommands), len(root.Subcommands))
}

func TestCommandUsage(t *testing.T) {
	var stdout bytes.Buffer
	root := NewRootCommand(&stdout, &bytes.Buffer{})

	require.NoError(t, root.Execute([]string{"--help"}))

	output := stdout.String()
	assert.Contains(t, output, "Usage: schema-validator")
	assert.Contains(t, output, "validate")
	assert.Contains(t, output, "rules")
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"unknown command", []string{"lint"}},
		{"unknown flag", []string{"--nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRootCommand(&bytes.Buffer{}, &bytes.Buffer{})
			err := root.Execute(tt.args)
			require.Error(t, err)
			assert.Equal(t, 1, ExitCode(err))
		})
	}
}

func TestRulesCommand(t *testing.T) {
	var stdout bytes.Buffer
	root := NewRootCommand(&stdout, &bytes.Buffer{})

	require.NoError(t, root.Execute([]string{"rules"}))

	assert.Contains(t, stdout.String(), "Available rules (11)")
	assert.Contains(t, stdout.String(), "SCHEMA_CTRY")
	assert.Contains(t, stdout.String(), "exit 20")
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	root := NewRootCommand(&stdout, &bytes.Buffer{})

	require.NoError(t, root.Execute([]string{"version"}))
	assert.Equal(t, "schema-validator dev\n", stdout.String())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 13, ExitCode(&ExitError{Code: 13}))

	wrapped := &ExitError{Code: 1, Err: errors.New("cannot read input")}
	assert.Equal(t, "cannot read input", wrapped.Error())
	assert.Equal(t, "exit status 4", (&ExitError{Code: 4}).Error())
}
