package tools

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"mcptoolkit/internal/registry"
)

// commandTimeout caps run_command wall-clock time. It is a variable so
// tests can shorten it.
var commandTimeout = 30 * time.Second

// GetSystemInfoInput has no parameters.
type GetSystemInfoInput struct{}

// GetSystemInfo reports platform identification, the Go runtime version,
// working and home directories, and a snapshot of the full process
// environment. The environment dump is a deliberate disclosure carried
// over from the reference behavior.
func GetSystemInfo(ctx context.Context, in GetSystemInfoInput) registry.Envelope {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	env := map[string]string{}
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[key] = value
	}

	return registry.Envelope{
		"platform":              runtime.GOOS,
		"platform_version":      osVersion(),
		"architecture":          runtime.GOARCH,
		"processor":             processorName(),
		"cpu_count":             runtime.NumCPU(),
		"go_version":            runtime.Version(),
		"current_directory":     cwd,
		"home_directory":        home,
		"environment_variables": env,
	}
}

// osVersion returns a best-effort kernel or OS release string.
func osVersion() string {
	if runtime.GOOS == "linux" {
		if release, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
			return strings.TrimSpace(string(release))
		}
	}
	return "unknown"
}

// processorName returns a best-effort processor identifier.
func processorName() string {
	if id := os.Getenv("PROCESSOR_IDENTIFIER"); id != "" {
		return id
	}
	if runtime.GOOS == "linux" {
		if cpuinfo, err := os.ReadFile("/proc/cpuinfo"); err == nil {
			for _, line := range strings.Split(string(cpuinfo), "\n") {
				if strings.HasPrefix(line, "model name") {
					if _, name, ok := strings.Cut(line, ":"); ok {
						return strings.TrimSpace(name)
					}
				}
			}
		}
	}
	return runtime.GOARCH
}

// RunCommandInput is a shell command and an optional working directory.
type RunCommandInput struct {
	Command          string `json:"command" jsonschema:"Shell command line to execute."`
	WorkingDirectory string `json:"working_directory,omitempty" jsonschema:"Working directory for the command, defaults to the current directory."`
}

// RunCommand executes a shell-interpreted command with a fixed timeout
// and captures exit code, stdout, and stderr separately. A timeout is
// reported distinctly from other execution failures.
func RunCommand(ctx context.Context, in RunCommandInput) registry.Envelope {
	workdir := in.WorkingDirectory
	if workdir == "" {
		workdir = "."
	}

	cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(cmdCtx, "cmd", "/C", in.Command)
	} else {
		cmd = exec.CommandContext(cmdCtx, "/bin/sh", "-c", in.Command)
	}
	cmd.Dir = workdir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if cmdCtx.Err() == context.DeadlineExceeded {
		return registry.Failf("command timed out after %d seconds", int(commandTimeout.Seconds()))
	}

	exitCode := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return registry.Failf("running command: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}

	return registry.Envelope{
		"command":           in.Command,
		"working_directory": workdir,
		"return_code":       exitCode,
		"stdout":            stdout.String(),
		"stderr":            stderr.String(),
		"success":           exitCode == 0,
	}
}

// GetEnvironmentVariableInput names the variable to look up.
type GetEnvironmentVariableInput struct {
	Name string `json:"name" jsonschema:"Name of the environment variable."`
}

// GetEnvironmentVariable reports a variable's value together with an
// explicit existence flag. A variable set to the empty string exists; an
// absent one reports a null value.
func GetEnvironmentVariable(ctx context.Context, in GetEnvironmentVariableInput) registry.Envelope {
	value, ok := os.LookupEnv(in.Name)
	env := registry.Envelope{
		"name":   in.Name,
		"exists": ok,
	}
	if ok {
		env["value"] = value
	} else {
		env["value"] = nil
	}
	return env
}
