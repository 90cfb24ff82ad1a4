package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const gitCommandTimeout = 10 * time.Second

// CommandError is returned when git exits unsuccessfully.
type CommandError struct {
	Subcommand string
	Stderr     string
	Err        error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s failed: %s", e.Subcommand, e.Stderr)
	}
	return fmt.Sprintf("git %s failed: %v", e.Subcommand, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// runGitCommand runs git in repoPath and returns its stdout. Failures,
// including timeouts, are reported as *CommandError.
func runGitCommand(repoPath string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", gitCommandTimeout, ctx.Err())
		}
		return nil, &CommandError{
			Subcommand: args[0],
			Stderr:     strings.TrimSpace(stderr.String()),
			Err:        err,
		}
	}

	return stdout.Bytes(), nil
}
