package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hbjs97/venvx/internal/config"
	"github.com/hbjs97/venvx/internal/shell"
	"github.com/hbjs97/venvx/internal/venv"
)

func (a *App) newActivateCmd() *cobra.Command {
	var shellType string
	var hookOnly bool

	cmd := &cobra.Command{
		Use:   "activate",
		Short: "현재 디렉토리의 가상환경 활성화 스니펫을 출력한다 (생성하지 않음)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if hookOnly {
				fmt.Fprint(cmd.OutOrStdout(), shell.HookSnippet(shellType))
				return nil
			}
			return a.runActivate(cmd, shellType)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", "zsh", "셸 유형 (bash, zsh, fish)")
	cmd.Flags().BoolVar(&hookOnly, "hook", false, "hook 스니펫만 출력")
	return cmd
}

// runActivate는 hook이 디렉토리 이동마다 호출하는 경로다.
// 가상환경이 없을 때는 생성하지 않고 비활성화 스니펫을 출력한다 —
// 가상환경이 있는 디렉토리를 벗어나면 자동으로 원래 환경으로 돌아가야 한다.
func (a *App) runActivate(cmd *cobra.Command, shellType string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.activate: %w", err)
	}

	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		// config 로드 실패 시 deactivate
		fmt.Fprint(cmd.OutOrStdout(), shell.Deactivate(shellType))
		return nil
	}

	venvPath := filepath.Join(cwd, cfg.VenvDir)
	if !venv.Exists(venvPath) {
		fmt.Fprint(cmd.OutOrStdout(), shell.Deactivate(shellType))
		return nil
	}

	promptLabel := ""
	if cfg.IsPrompt() {
		promptLabel = "(" + cfg.VenvDir + ") "
	}
	fmt.Fprint(cmd.OutOrStdout(), shell.Activate(venvPath, promptLabel, shellType))
	return nil
}

func (a *App) newDeactivateCmd() *cobra.Command {
	var shellType string

	cmd := &cobra.Command{
		Use:   "deactivate",
		Short: "가상환경 비활성화 스니펫을 출력한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), shell.Deactivate(shellType))
			return nil
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", "zsh", "셸 유형 (bash, zsh, fish)")
	return cmd
}
