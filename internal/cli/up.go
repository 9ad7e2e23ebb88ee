package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hbjs97/venvx/internal/cache"
	"github.com/hbjs97/venvx/internal/config"
	"github.com/hbjs97/venvx/internal/python"
	"github.com/hbjs97/venvx/internal/shell"
	"github.com/hbjs97/venvx/internal/venv"
)

// runUp은 bootstrap 본체다: <cwd>/venv가 있으면 활성화만 하고,
// 없으면 생성 후 활성화한다. 활성화 스니펫은 stdout, 안내 메시지는 stderr로
// 분리한다 — stdout은 eval 대상이므로 스니펫 외의 출력이 섞이면 안 된다.
func (a *App) runUp(ctx context.Context, cmd *cobra.Command, shellType string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.up: %w", err)
	}

	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		return err
	}

	venvPath := filepath.Join(cwd, cfg.VenvDir)
	promptLabel := ""
	if cfg.IsPrompt() {
		promptLabel = "(" + cfg.VenvDir + ") "
	}

	if venv.Exists(venvPath) {
		fmt.Fprint(cmd.OutOrStdout(), shell.Activate(venvPath, promptLabel, shellType))
		fmt.Fprintf(cmd.ErrOrStderr(), "기존 가상환경 활성화: %s\n", venvPath)
		return nil
	}

	interp, err := a.resolveInterpreter(ctx, cfg)
	if err != nil {
		return err
	}
	a.logger().Debug("인터프리터 판정", "bin", interp.Path, "version", interp.Version)

	py := python.NewAdapter(a.Commander)
	if err := py.EnsureVenv(ctx, interp.Path, venvPath); err != nil {
		return err
	}

	if cfg.AutoInstallRequirements {
		reqPath := filepath.Join(cwd, "requirements.txt")
		if _, err := os.Stat(reqPath); err == nil {
			a.logger().Debug("requirements 설치", "path", reqPath)
			if err := py.PipInstall(ctx, venvPath, reqPath); err != nil {
				return err
			}
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), shell.Activate(venvPath, promptLabel, shellType))
	fmt.Fprintf(cmd.ErrOrStderr(), "가상환경 생성 및 활성화: %s\n", venvPath)
	return nil
}

// resolveInterpreter는 설정의 제약식을 만족하는 인터프리터를 찾는다.
// python_bin이 지정되어 있으면 탐색 없이 그대로 사용하고,
// 아니면 캐시를 먼저 확인한 뒤 후보 탐색 결과를 캐시에 기록한다.
func (a *App) resolveInterpreter(ctx context.Context, cfg *config.Config) (*python.Interpreter, error) {
	py := python.NewAdapter(a.Commander)

	if cfg.PythonBin != "" {
		ver, err := py.Version(ctx, cfg.PythonBin)
		if err != nil {
			return nil, fmt.Errorf("cli.up: python_bin %s: %w", cfg.PythonBin, python.ErrNoInterpreter)
		}
		return &python.Interpreter{Path: cfg.PythonBin, Version: ver}, nil
	}

	cons, err := cfg.Constraint()
	if err != nil {
		return nil, err
	}

	// 캐시는 설정 파일을 만든 사용자에게만 켠다 — 설정 없이 실행하면
	// venvx는 venv 디렉토리 외에 아무것도 쓰지 않아야 한다.
	var c *cache.Cache
	if a.CachePath != "" && fileExists(a.CfgPath) {
		c, _ = cache.Load(a.CachePath) // 캐시 로드 실패 시 빈 캐시 사용
		if e, ok := c.Lookup(cfg.Python, cfg.ConfigHash(), cfg.CacheTTLDays); ok {
			a.logger().Debug("인터프리터 캐시 hit", "bin", e.Interpreter)
			return &python.Interpreter{Path: e.Interpreter, Version: e.PyVersion}, nil
		}
	}

	interp, err := py.FindInterpreter(ctx, cons, nil)
	if err != nil {
		return nil, err
	}

	if c != nil {
		c.Set(cfg.Python, cache.Entry{
			Interpreter: interp.Path,
			PyVersion:   interp.Version,
			ResolvedAt:  time.Now().Format(time.RFC3339),
			ConfigHash:  cfg.ConfigHash(),
		})
		_ = c.Save(a.CachePath) // 캐시 저장 실패는 치명적이지 않음
	}
	return interp, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
