package cli

import (
	"context"
	stderrors "errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/hostdash/internal/config"
	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

// isolate runs the test in an empty directory with HOME pointing at it,
// so no real config is found.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  stderrors.New(`unknown command "foo" for "hostdash"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  stderrors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "other error",
			err:  stderrors.New("config file not found"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  stderrors.New(`unknown command "foo" for "hostdash"`),
			want: "foo",
		},
		{
			name: "command with hyphen",
			err:  stderrors.New(`unknown command "my-cmd" for "hostdash"`),
			want: "my-cmd",
		},
		{
			name: "no quotes returns empty",
			err:  stderrors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  stderrors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestUnknownCommandError_SuggestsClosest(t *testing.T) {
	err := unknownCommandError(stderrors.New(`unknown command "chek" for "hostdash"`))

	require.True(t, errors.IsCode(err, errors.ErrExec))
	assert.Contains(t, err.Error(), "Unknown command 'chek'")
	assert.Contains(t, err.Error(), "Did you mean 'hostdash check'?")
}

func TestUnknownCommandError_NoCloseMatch(t *testing.T) {
	err := unknownCommandError(stderrors.New(`unknown command "zzzzzzzz" for "hostdash"`))

	assert.Contains(t, err.Error(), "hostdash --help")
	assert.NotContains(t, err.Error(), "Did you mean")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"init", "check", "version", "completion"} {
		assert.True(t, names[want], want)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestLoadDashboardConfig_NoConfig(t *testing.T) {
	isolate(t)

	_, _, err := loadDashboardConfig("")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "hostdash init")
}

func TestLoadDashboardConfig_LoadsAndValidates(t *testing.T) {
	dir := isolate(t)

	cfg := config.DefaultConfig()
	cfg.Network.Interface = "eth0"
	require.NoError(t, config.Write(filepath.Join(dir, config.ConfigFileName), cfg, false))

	got, path, err := loadDashboardConfig("")

	require.NoError(t, err)
	assert.Equal(t, "eth0", got.Network.Interface)
	assert.Equal(t, "/", got.Disk.Volume)
	assert.Equal(t, config.ConfigFileName, filepath.Base(path))
}

func TestLoadDashboardConfig_InvalidConfig(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "dash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\ndisk:\n  volume: /\n"), 0o644))

	_, _, err := loadDashboardConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "No network interface configured")
}

func TestDashboardCommand_RequiresTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal")
	}

	err := dashboardCommand(context.Background(), "")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrExec))
}

func TestRedirectLog_DiscardsWithoutDebug(t *testing.T) {
	t.Setenv(logger.DebugEnv, "")
	defer log.SetOutput(os.Stderr)

	restore, err := redirectLog()
	require.NoError(t, err)

	assert.Equal(t, io.Discard, log.Writer())
	restore()
	assert.Equal(t, os.Stderr, log.Writer())
}

func TestRedirectLog_WritesFileWithDebug(t *testing.T) {
	dir := isolate(t)
	t.Setenv(logger.DebugEnv, "1")
	defer log.SetOutput(os.Stderr)

	restore, err := redirectLog()
	require.NoError(t, err)

	log.Print("sampler started")
	restore()

	data, err := os.ReadFile(filepath.Join(dir, debugLogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "sampler started")
}
