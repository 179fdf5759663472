package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/types"
)

func TestMatchCommand_Text(t *testing.T) {
	srv := newEmbeddingServer(t)
	setupEnv(t, srv.URL)

	stdout, _, err := executeCommand(t, "match", "--resume-text", goResume, "--job-text", testJob)
	require.NoError(t, err)

	var result types.MatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, testModel, result.Model)
	assert.Equal(t, "mean", result.Pool)
	assert.InDelta(t, 1.0, result.Result.EmbeddingSim, 1e-6)
	assert.Equal(t, 0.8, result.Result.Score)
	assert.Equal(t, []string{"Go", "SQL"}, result.Explanation.Strong)
	assert.Equal(t, []string{"Python"}, result.Explanation.Missing)
}

func TestMatchCommand_PositionalFiles(t *testing.T) {
	srv := newEmbeddingServer(t)
	setupEnv(t, srv.URL)

	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", goResume)
	job := writeFile(t, dir, "job.txt", testJob)

	stdout, _, err := executeCommand(t, "match", resume, job, "--pool", "max")
	require.NoError(t, err)

	var result types.MatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "max", result.Pool)
	assert.Equal(t, "resume.txt", result.ResumeMeta["filename"])
	assert.Equal(t, "job.txt", result.JobMeta["filename"])
}

func TestMatchCommand_OutputFileAndVerbose(t *testing.T) {
	srv := newEmbeddingServer(t)
	setupEnv(t, srv.URL)

	out := filepath.Join(t.TempDir(), "match.json")
	stdout, stderr, err := executeCommand(t, "match",
		"--resume-text", pythonResume,
		"--job-text", testJob,
		"--output", out,
		"--verbose")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	assert.Contains(t, stderr, "[embed_job]")
	assert.Contains(t, stderr, "[score]")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var result types.MatchResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.InDelta(t, 0.0, result.Result.EmbeddingSim, 1e-6)
	assert.Equal(t, 0.2, result.Result.Score)
	assert.Equal(t, []string{"Go"}, result.Explanation.Missing)
}

func TestMatchCommand_Errors(t *testing.T) {
	srv := newEmbeddingServer(t)
	setupEnv(t, srv.URL)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing resume",
			args:    []string{"match", "--job-text", testJob},
			wantErr: "a resume is required",
		},
		{
			name:    "missing job",
			args:    []string{"match", "--resume-text", goResume},
			wantErr: "a job description is required",
		},
		{
			name:    "two job inputs",
			args:    []string{"match", "--resume-text", goResume, "--job-text", testJob, "--job", "job.txt"},
			wantErr: "mutually exclusive",
		},
		{
			name:    "unsupported format",
			args:    []string{"match", "--resume", "resume.rtf", "--job-text", testJob},
			wantErr: "unsupported document format",
		},
		{
			name:    "bad pool",
			args:    []string{"match", "--resume-text", goResume, "--job-text", testJob, "--pool", "median"},
			wantErr: "pool",
		},
		{
			name:    "unknown model",
			args:    []string{"match", "--resume-text", goResume, "--job-text", testJob, "--model", "no-such-model"},
			wantErr: "no-such-model",
		},
		{
			name:    "save without database",
			args:    []string{"match", "--resume-text", goResume, "--job-text", testJob, "--save"},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "too many arguments",
			args:    []string{"match", "a", "b", "c"},
			wantErr: "accepts at most 2 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatchCommand_BackendDown(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1")

	_, _, err := executeCommand(t, "match", "--resume-text", goResume, "--job-text", testJob)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding backend check failed")

	var unavailable *embedding.ModelUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, testModel, unavailable.Model)
}
