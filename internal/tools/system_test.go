package tools

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSystemInfo(t *testing.T) {
	t.Setenv("MCPTOOLKIT_PROBE", "probe-value")

	env := GetSystemInfo(context.Background(), GetSystemInfoInput{})
	assert.False(t, env.Failed())
	assert.Equal(t, runtime.GOOS, env["platform"])
	assert.Equal(t, runtime.GOARCH, env["architecture"])
	assert.Equal(t, runtime.Version(), env["go_version"])
	assert.NotEmpty(t, env["current_directory"])
	assert.NotEmpty(t, env["processor"])

	vars := env["environment_variables"].(map[string]string)
	assert.Equal(t, "probe-value", vars["MCPTOOLKIT_PROBE"])
}

func TestGetEnvironmentVariable(t *testing.T) {
	ctx := context.Background()

	t.Run("set variable", func(t *testing.T) {
		t.Setenv("MCPTOOLKIT_SET", "value")
		env := GetEnvironmentVariable(ctx, GetEnvironmentVariableInput{Name: "MCPTOOLKIT_SET"})
		assert.Equal(t, true, env["exists"])
		assert.Equal(t, "value", env["value"])
	})

	t.Run("empty string still exists", func(t *testing.T) {
		t.Setenv("MCPTOOLKIT_EMPTY", "")
		env := GetEnvironmentVariable(ctx, GetEnvironmentVariableInput{Name: "MCPTOOLKIT_EMPTY"})
		assert.Equal(t, true, env["exists"])
		assert.Equal(t, "", env["value"])
	})

	t.Run("absent variable is not an error", func(t *testing.T) {
		env := GetEnvironmentVariable(ctx, GetEnvironmentVariableInput{Name: "SOME_UNSET_VAR_xyz"})
		assert.False(t, env.Failed())
		assert.Equal(t, false, env["exists"])
		assert.Nil(t, env["value"])
	})
}

func TestRunCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell semantics differ on windows")
	}
	ctx := context.Background()

	t.Run("captures stdout and exit code", func(t *testing.T) {
		env := RunCommand(ctx, RunCommandInput{Command: "echo hi"})
		assert.False(t, env.Failed())
		assert.Equal(t, 0, env["return_code"])
		assert.Equal(t, "hi\n", env["stdout"])
		assert.Equal(t, "", env["stderr"])
		assert.Equal(t, true, env["success"])
	})

	t.Run("nonzero exit is a result, not an error", func(t *testing.T) {
		env := RunCommand(ctx, RunCommandInput{Command: "exit 3"})
		assert.False(t, env.Failed())
		assert.Equal(t, 3, env["return_code"])
		assert.Equal(t, false, env["success"])
	})

	t.Run("captures stderr separately", func(t *testing.T) {
		env := RunCommand(ctx, RunCommandInput{Command: "echo oops >&2"})
		assert.False(t, env.Failed())
		assert.Equal(t, "", env["stdout"])
		assert.Equal(t, "oops\n", env["stderr"])
	})

	t.Run("runs in the working directory", func(t *testing.T) {
		dir := t.TempDir()
		env := RunCommand(ctx, RunCommandInput{Command: "pwd", WorkingDirectory: dir})
		assert.False(t, env.Failed())
		assert.Contains(t, env["stdout"], dir)
		assert.Equal(t, dir, env["working_directory"])
	})

	t.Run("timeout is reported distinctly", func(t *testing.T) {
		old := commandTimeout
		commandTimeout = 100 * time.Millisecond
		defer func() { commandTimeout = old }()

		env := RunCommand(ctx, RunCommandInput{Command: "sleep 5"})
		assert.True(t, env.Failed())
		assert.Contains(t, env["error"], "timed out")
	})

	t.Run("missing working directory", func(t *testing.T) {
		env := RunCommand(ctx, RunCommandInput{Command: "echo hi", WorkingDirectory: "/definitely/not/here"})
		assert.True(t, env.Failed())
		assert.NotContains(t, env["error"], "timed out")
	})
}
