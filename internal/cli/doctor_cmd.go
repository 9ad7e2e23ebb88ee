package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hbjs97/venvx/internal/config"
	"github.com/hbjs97/venvx/internal/doctor"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "python 환경을 진단한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context(), cmd)
		},
	}
}

func (a *App) runDoctor(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		fmt.Fprintf(out, "[FAIL] config: %v\n", err)
		fmt.Fprintln(out, "      Fix: venvx setup 실행 또는 설정 파일 확인")
		cfg = config.Default()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.doctor: %w", err)
	}
	venvPath := filepath.Join(cwd, cfg.VenvDir)

	var candidates []string
	if cfg.PythonBin != "" {
		candidates = []string{cfg.PythonBin}
	}
	results := doctor.RunAll(ctx, a.Commander, cfg.Python, venvPath, candidates)
	printDiagResults(out, results)
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(out io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		icon := statusIcon(r.Status)
		fmt.Fprintf(out, "  [%s] %s: %s\n", icon, r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(out, "      Fix: %s\n", r.Fix)
		}
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return "OK"
	case doctor.StatusWarn:
		return "!!"
	case doctor.StatusFail:
		return "FAIL"
	default:
		return "??"
	}
}
