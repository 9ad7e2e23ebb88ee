package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hbjs97/venvx/internal/config"
	"github.com/hbjs97/venvx/internal/venv"
)

func (a *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "현재 디렉토리의 가상환경 상태를 표시한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd)
		},
	}
}

func (a *App) runStatus(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.status: %w", err)
	}

	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		return err
	}

	venvPath := filepath.Join(cwd, cfg.VenvDir)
	out := cmd.OutOrStdout()

	if !venv.Exists(venvPath) {
		fmt.Fprintf(out, "가상환경 없음: %s\n", venvPath)
		fmt.Fprintln(out, "'venvx'를 실행하면 생성됩니다.")
		return nil
	}

	fmt.Fprintf(out, "가상환경: %s\n", venvPath)

	if info, err := venv.ReadInfo(venvPath); err == nil {
		if info.Version != "" {
			fmt.Fprintf(out, "  python:  %s\n", info.Version)
		}
		if info.Home != "" {
			fmt.Fprintf(out, "  home:    %s\n", info.Home)
		}
	} else {
		fmt.Fprintln(out, "  pyvenv.cfg 없음 — 불완전한 환경일 수 있습니다")
	}

	if venv.IsActive(venvPath) {
		fmt.Fprintln(out, "  상태:    활성화됨")
	} else {
		fmt.Fprintln(out, "  상태:    비활성")
	}
	return nil
}
