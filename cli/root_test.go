package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"legal-roster/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "roster v"+Version)
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()

	flag := cmd.PersistentFlags().Lookup("configfile")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
	assert.Equal(t, "config.json", flag.DefValue)

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"ping", "export", "version"})
}

func TestExportCommand_RejectsFormatBeforeConnecting(t *testing.T) {
	_, err := execute(t, "export", "--format", "csv", "-c", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, service.ErrUnsupportedFormat)
}

func TestPingCommand_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "ping", "-c", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
