package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hbjs97/venvx/internal/setup"
)

// setupTemplate는 venvx setup이 생성하는 기본 config.toml 내용이다.
const setupTemplate = `# venvx configuration file
# See: https://github.com/hbjs97/venvx

version = 1
# venv_dir = "venv"
# python = ">=3.8"
# python_bin = "/usr/local/bin/python3.12"
# prompt = true
# auto_install_requirements = false
# cache_ttl_days = 7
`

func (a *App) newSetupCmd() *cobra.Command {
	var shellType string
	var noHook bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "venvx 초기 설정을 시작한다 (설정 파일 생성 + 셸 hook 설치)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSetup(cmd, shellType, noHook)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", setup.DetectShell(), "hook을 설치할 셸 유형")
	cmd.Flags().BoolVar(&noHook, "no-hook", false, "셸 hook 설치 생략")
	return cmd
}

func (a *App) runSetup(cmd *cobra.Command, shellType string, noHook bool) error {
	out := cmd.OutOrStdout()

	// Check if config file already exists
	if _, err := os.Stat(a.CfgPath); err == nil {
		fmt.Fprintf(out, "설정 파일이 이미 존재합니다: %s\n", a.CfgPath)
	} else {
		dir := filepath.Dir(a.CfgPath)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("cli.setup: 디렉토리 생성 실패: %w", err)
		}
		if err := os.WriteFile(a.CfgPath, []byte(setupTemplate), 0600); err != nil {
			return fmt.Errorf("cli.setup: 설정 파일 생성 실패: %w", err)
		}
		fmt.Fprintf(out, "설정 파일이 생성되었습니다: %s\n", a.CfgPath)
	}

	if noHook {
		return nil
	}

	rcPath := setup.ShellRCPath(shellType)
	if rcPath == "" {
		return fmt.Errorf("cli.setup: 지원하지 않는 셸: %s", shellType)
	}
	if err := setup.InstallShellHook(shellType, rcPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "셸 hook 설치됨: %s\n", rcPath)
	fmt.Fprintln(out, "새 셸을 열거나 rc 파일을 source한 후 venvx doctor로 환경을 확인하세요.")
	return nil
}
