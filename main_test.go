package main

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMainBinary is the name of the compiled binary used for testing main.
const testMainBinary = "test_main_executable"

// buildMain builds the main package and returns the path to the executable
// and a cleanup function to remove it.
func buildMain(t *testing.T) (string, func()) {
	t.Helper()

	binaryPath := testMainBinary // Build in current dir

	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to build main binary: %v\nOutput:\n%s", err, string(output))
	}

	cleanup := func() {
		err := os.Remove(binaryPath)
		if err != nil && !os.IsNotExist(err) {
			t.Logf("Warning: Failed to remove test binary %s: %v", binaryPath, err)
		}
	}

	absPath, err := filepath.Abs(binaryPath)
	require.NoError(t, err, "Failed to get absolute path for test binary")

	return absPath, cleanup
}

// runMain runs the compiled main binary as a subprocess with given environment variables.
// It returns the exit code and the captured stderr output.
// It waits a short duration for the process to start and fail.
func runMain(t *testing.T, binaryPath string, envVars map[string]string) (exitCode int, stderr string) {
	t.Helper()

	cmd := exec.Command(binaryPath)

	cmd.Env = os.Environ()
	for key, value := range envVars {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	var stderrBuf strings.Builder
	cmd.Stderr = &stderrBuf

	err := cmd.Start()
	require.NoError(t, err, "Failed to start main process")

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-time.After(3 * time.Second):
		// Process likely running (or hung), kill it
		_ = cmd.Process.Kill()
		t.Logf("Main process timed out after 3 seconds, killing.")
		return -1, stderrBuf.String()
	case err := <-done:
		stderr = stderrBuf.String()
		if err != nil {
			if exitError, ok := err.(*exec.ExitError); ok {
				return exitError.ExitCode(), stderr
			}
			t.Fatalf("Main process failed with unexpected error: %v", err)
			return -1, stderr // Should not be reached
		}
		return 0, stderr
	}
}

// TestMainFailureScenarios tests the main function's startup failure paths.
func TestMainFailureScenarios(t *testing.T) {
	binaryPath, cleanup := buildMain(t)
	defer cleanup()

	t.Run("ConfigFailure_DataPathIsDirectory", func(t *testing.T) {
		// Point the data file at an existing directory
		invalidDataPath := t.TempDir()

		env := map[string]string{
			"EXPIRYTRACKER_DATA_FILE": invalidDataPath,
		}

		exitCode, stderr := runMain(t, binaryPath, env)

		assert.NotEqual(t, 0, exitCode, "Expected non-zero exit code for config failure")
		assert.Contains(t, stderr, "CRITICAL: Failed to load configuration", "Stderr should contain config load error message")
		assert.Contains(t, stderr, "points to a directory", "Stderr should mention the path is a directory")
	})

	t.Run("ServerBindFailure_PortInUse", func(t *testing.T) {
		// Occupy a port, then tell the server to use it
		listener, err := net.Listen("tcp", ":0")
		require.NoError(t, err, "Failed to listen on a random port")
		defer listener.Close()

		tcpAddr, ok := listener.Addr().(*net.TCPAddr)
		require.True(t, ok, "Listener address is not TCPAddr: %v", listener.Addr())
		port := fmt.Sprintf("%d", tcpAddr.Port)

		env := map[string]string{
			"EXPIRYTRACKER_LISTEN_PORT": port,
			"EXPIRYTRACKER_DATA_FILE":   filepath.Join(t.TempDir(), "test_bind_fail.json"),
		}

		exitCode, stderr := runMain(t, binaryPath, env)

		assert.NotEqual(t, 0, exitCode, "Expected non-zero exit code for server bind failure")
		assert.Contains(t, stderr, "CRITICAL: Server failed to start", "Stderr should contain server start error message")
		assert.Contains(t, strings.ToLower(stderr), "address already in use", "Stderr should mention address in use")
	})
}
