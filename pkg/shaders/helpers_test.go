package shaders

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

// mustGit runs a git command inside dir with test-local identity settings
func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()

	base := []string{
		"-c", "user.name=reshader-test",
		"-c", "user.email=test@example.com",
		"-C", dir,
	}
	cmd := exec.Command("git", append(base, args...)...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}
