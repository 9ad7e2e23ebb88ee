package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/hbjs97/venvx/internal/cmdexec"
	"github.com/hbjs97/venvx/internal/python"
	"github.com/hbjs97/venvx/internal/venv"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// CheckInterpreter는 제약식을 만족하는 python 인터프리터 존재 여부를 확인한다.
// 성공 시 찾은 인터프리터도 함께 반환한다 (실패 시 nil).
func CheckInterpreter(ctx context.Context, cmd cmdexec.Commander, constraint string, candidates []string) (DiagResult, *python.Interpreter) {
	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return DiagResult{
			Name:    "python",
			Status:  StatusFail,
			Message: fmt.Sprintf("python 제약식 파싱 실패: %q", constraint),
			Fix:     "config.toml의 python 값을 확인하세요",
		}, nil
	}

	py := python.NewAdapter(cmd)
	interp, err := py.FindInterpreter(ctx, cons, candidates)
	if err != nil {
		// 제약식 무시하고 아무 인터프리터라도 있는지 구분해서 안내한다
		if any, anyErr := py.FindInterpreter(ctx, nil, candidates); anyErr == nil {
			return DiagResult{
				Name:    "python",
				Status:  StatusFail,
				Message: fmt.Sprintf("python %s 발견, 제약식 %q 불만족", any.Version, constraint),
				Fix:     "제약식을 만족하는 python을 설치하거나 python_bin을 지정하세요",
			}, nil
		}
		return DiagResult{
			Name:    "python",
			Status:  StatusFail,
			Message: "python 인터프리터 없음",
			Fix:     "설치: https://www.python.org/downloads/",
		}, nil
	}
	return DiagResult{
		Name:    "python",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s (%s)", interp.Path, interp.Version),
	}, interp
}

// CheckVenvModule은 인터프리터에서 venv/ensurepip 모듈 사용 가능 여부를 확인한다.
// 일부 리눅스 배포판은 venv 모듈을 별도 패키지로 분리한다.
func CheckVenvModule(ctx context.Context, cmd cmdexec.Commander, bin string) DiagResult {
	_, err := cmd.Run(ctx, bin, "-c", "import venv, ensurepip")
	if err != nil {
		return DiagResult{
			Name:    "venv_module",
			Status:  StatusFail,
			Message: "venv 모듈 사용 불가",
			Fix:     "python3-venv 패키지를 설치하세요 (예: apt install python3-venv)",
		}
	}
	return DiagResult{
		Name:    "venv_module",
		Status:  StatusOK,
		Message: "venv, ensurepip 사용 가능",
	}
}

// CheckVenvPip은 기존 가상환경 내부의 pip 동작을 확인한다.
// 가상환경이 없으면 검사를 건너뛴다 (OK).
func CheckVenvPip(ctx context.Context, cmd cmdexec.Commander, venvPath string) DiagResult {
	if !venv.Exists(venvPath) {
		return DiagResult{
			Name:    "venv_pip",
			Status:  StatusOK,
			Message: "가상환경 없음 — 검사 생략",
		}
	}
	out, err := cmd.Run(ctx, venv.PythonPath(venvPath), "-m", "pip", "--version")
	if err != nil {
		return DiagResult{
			Name:    "venv_pip",
			Status:  StatusWarn,
			Message: fmt.Sprintf("가상환경 pip 동작 안함: %s", venvPath),
			Fix:     fmt.Sprintf("%s 삭제 후 venvx를 다시 실행하세요", venvPath),
		}
	}
	return DiagResult{
		Name:    "venv_pip",
		Status:  StatusOK,
		Message: strings.TrimSpace(string(out)),
	}
}

// CheckEnvInterference는 다른 가상환경이 이미 활성화되어 있는지 확인한다.
func CheckEnvInterference(venvPath string) DiagResult {
	active := os.Getenv("VIRTUAL_ENV")
	if active == "" || filepath.Clean(active) == filepath.Clean(venvPath) {
		return DiagResult{
			Name:    "env_interference",
			Status:  StatusOK,
			Message: "활성화된 외부 가상환경 없음",
		}
	}
	return DiagResult{
		Name:    "env_interference",
		Status:  StatusWarn,
		Message: fmt.Sprintf("다른 가상환경이 활성화됨: %s", active),
		Fix:     "venvx deactivate 출력을 eval하거나 새 셸에서 실행하세요",
	}
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, cmd cmdexec.Commander, constraint, venvPath string, candidates []string) []DiagResult {
	var results []DiagResult
	interpResult, interp := CheckInterpreter(ctx, cmd, constraint, candidates)
	results = append(results, interpResult)

	if interp != nil {
		results = append(results, CheckVenvModule(ctx, cmd, interp.Path))
	}
	results = append(results, CheckVenvPip(ctx, cmd, venvPath))
	results = append(results, CheckEnvInterference(venvPath))
	return results
}
