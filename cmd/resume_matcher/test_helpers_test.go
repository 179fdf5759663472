package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const (
	testModel     = "all-MiniLM-L6-v2"
	testDimension = 384

	goResume     = "Backend engineer with five years of Go and SQL experience building services."
	pythonResume = "Python and SQL developer who enjoys data pipelines and analytics work."
	testJob      = "Backend role\n\nRequirements:\nGo, SQL, Python"
)

// newEmbeddingServer starts a fake text-embeddings-inference server.
// Inputs mentioning Go land on axis 0, everything else on axis 1.
func newEmbeddingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embed" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Inputs []string `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		out := make([][]float32, len(req.Inputs))
		for i, text := range req.Inputs {
			vec := make([]float32, testDimension)
			if strings.Contains(text, "Go") {
				vec[0] = 1
			} else {
				vec[1] = 1
			}
			out[i] = vec
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// setupEnv points the CLI at endpoint and isolates it from the caller's environment
func setupEnv(t *testing.T, endpoint string) {
	t.Helper()
	t.Setenv("MATCHER_MODEL", testModel)
	t.Setenv("MATCHER_PROVIDER", "http")
	t.Setenv("MATCHER_ENDPOINT", endpoint)
	for _, key := range []string{"MATCHER_API_KEY", "GEMINI_API_KEY", "MATCHER_DATABASE_URL", "DATABASE_URL", "MATCHER_SKILLS_FILE", "MATCHER_POOL"} {
		t.Setenv(key, "")
	}
}

// executeCommand runs the root command in-process and captures stdout and stderr
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so package-level flag variables do not leak between runs
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
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
