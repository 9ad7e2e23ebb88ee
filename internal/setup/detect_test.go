package setup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectShell_Zsh(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	assert.Equal(t, "zsh", DetectShell())
}

func TestDetectShell_Bash(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/bash")
	assert.Equal(t, "bash", DetectShell())
}

func TestDetectShell_Fish(t *testing.T) {
	t.Setenv("SHELL", "/usr/local/bin/fish")
	assert.Equal(t, "fish", DetectShell())
}

func TestShellRCPath_Zsh(t *testing.T) {
	path := ShellRCPath("zsh")
	assert.True(t, strings.HasSuffix(path, ".zshrc"))
}

func TestShellRCPath_Fish(t *testing.T) {
	path := ShellRCPath("fish")
	assert.True(t, strings.HasSuffix(path, "venvx.fish"))
}

func TestShellRCPath_Unknown(t *testing.T) {
	assert.Empty(t, ShellRCPath("tcsh"))
}
