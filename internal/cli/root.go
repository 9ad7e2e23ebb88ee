package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hbjs97/venvx/internal/cmdexec"
)

// App은 CLI 명령 전체가 공유하는 의존성 묶음이다.
// 테스트는 Commander에 FakeCommander를, CfgPath/CachePath에 임시 경로를 주입한다.
type App struct {
	Commander cmdexec.Commander
	CfgPath   string
	CachePath string
	Logger    *log.Logger
}

// NewApp은 프로덕션 기본값으로 App을 생성한다.
func NewApp() *App {
	return &App{
		Commander: &cmdexec.RealCommander{},
		CfgPath:   filepath.Join(configDir(), "config.toml"),
		CachePath: filepath.Join(configDir(), "cache.json"),
		Logger:    log.NewWithOptions(os.Stderr, log.Options{Prefix: "venvx"}),
	}
}

// NewRootCmd는 venvx CLI의 루트 명령을 생성한다.
// 루트 명령 자체가 bootstrap이다: 인자 없이 실행하면 현재 디렉토리의
// 가상환경을 감지하거나 생성한 뒤 활성화 스니펫을 출력한다.
func (a *App) NewRootCmd() *cobra.Command {
	var verbose bool
	var shellType string

	cmd := &cobra.Command{
		Use:          "venvx",
		Short:        "현재 디렉토리의 python 가상환경을 감지/생성하고 활성화한다",
		Long: `venvx는 현재 디렉토리에 python 가상환경이 있으면 활성화하고,
없으면 python -m venv로 생성한 뒤 활성화한다.

자식 프로세스는 부모 셸의 환경을 바꿀 수 없으므로 venvx는 활성화 명령을
stdout으로 출력한다. 셸에서 eval로 감싸서 사용한다:

  eval "$(venvx)"`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				a.logger().SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUp(cmd.Context(), cmd, shellType)
		},
	}

	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", a.CfgPath, "설정 파일 경로")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "상세 출력")
	cmd.Flags().StringVar(&shellType, "shell", "zsh", "셸 유형 (bash, zsh, fish)")

	cmd.AddCommand(
		a.newActivateCmd(),
		a.newDeactivateCmd(),
		a.newStatusCmd(),
		a.newDoctorCmd(),
		a.newSetupCmd(),
	)
	return cmd
}

// logger는 Logger가 주입되지 않은 경우 기본 logger를 반환한다.
func (a *App) logger() *log.Logger {
	if a.Logger == nil {
		a.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "venvx"})
	}
	return a.Logger
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "경고: 홈 디렉토리 확인 실패: %v\n", err)
		home = "."
	}
	return filepath.Join(home, ".config", "venvx")
}
