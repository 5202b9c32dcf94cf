package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag of the command tree back to its default so
// package-level flag variables do not leak between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// cli runs hiretrack commands against one SQLite file.
type cli struct {
	t    *testing.T
	base []string
}

func newCLI(t *testing.T, extra ...string) *cli {
	t.Helper()
	t.Setenv("HIRETRACK_API_URL", "http://127.0.0.1:1")
	t.Setenv("HIRETRACK_LOG_LEVEL", "error")
	t.Setenv("HIRETRACK_DEMO_MODE", "")
	dsn := filepath.Join(t.TempDir(), "hiretrack.db")
	return &cli{t: t, base: append([]string{"--store", "sqlite", "--dsn", dsn}, extra...)}
}

func (c *cli) run(args ...string) (stdout, stderr string, err error) {
	c.t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(append([]string{}, c.base...), args...))
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (c *cli) ok(args ...string) string {
	c.t.Helper()
	out, errOut, err := c.run(args...)
	require.NoError(c.t, err, "stderr: %s", errOut)
	return out
}

func (c *cli) json(v any, args ...string) {
	c.t.Helper()
	out := c.ok(append(args, "--json")...)
	require.NoError(c.t, json.Unmarshal([]byte(out), v), out)
}
