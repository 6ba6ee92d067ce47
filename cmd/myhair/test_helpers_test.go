package main

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"myhair/internal/devserver"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// executeCommand runs root with args and returns everything written to
// stdout and stderr.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	resetFlags(root)
	// Mock exit
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				return
			}
			panic(r)
		}
	}()
	root.SetArgs(args)
	b := new(bytes.Buffer)
	root.SetOut(b)
	root.SetErr(b)
	// Mock Stdin to avoid hanging on interactive prompts
	root.SetIn(bytes.NewBufferString(""))
	err := root.Execute()
	return b.String(), err
}

// resetFlags resets all flags to their default values.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// useDevBackend points every command at a fresh development server and a
// private cache and log file. It returns the server's URL.
func useDevBackend(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(devserver.New().Handler())
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	t.Setenv("MYHAIR_API_URL", ts.URL)
	t.Setenv("MYHAIR_CACHE_PATH", filepath.Join(dir, "cache.db"))
	t.Setenv("MYHAIR_LOG_FILE", filepath.Join(dir, "myhair.log"))
	return ts.URL
}
