package python

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/hbjs97/venvx/internal/cmdexec"
	"github.com/hbjs97/venvx/internal/venv"
)

// ErrNoInterpreter는 제약식을 만족하는 python 인터프리터가 없을 때의 sentinel error다.
var ErrNoInterpreter = errors.New("사용 가능한 python 인터프리터 없음")

// DefaultCandidates는 인터프리터 탐색 시 시도하는 실행 파일 이름 순서다.
var DefaultCandidates = []string{"python3", "python"}

// Interpreter는 탐색으로 찾은 인터프리터다.
type Interpreter struct {
	Path    string
	Version string
}

// Adapter는 python 실행 파일을 Commander를 통해 호출한다.
type Adapter struct {
	cmd cmdexec.Commander
}

// NewAdapter는 새 Python Adapter를 생성한다.
func NewAdapter(cmd cmdexec.Commander) *Adapter {
	return &Adapter{cmd: cmd}
}

// Version은 bin --version 출력에서 버전 문자열을 추출한다 (예: "3.11.2").
func (a *Adapter) Version(ctx context.Context, bin string) (string, error) {
	out, err := a.cmd.Run(ctx, bin, "--version")
	if err != nil {
		return "", fmt.Errorf("python.Version: %s: %w", bin, err)
	}
	return ParseVersion(string(out))
}

// ParseVersion은 "Python X.Y.Z" 형식의 출력에서 버전을 추출한다.
func ParseVersion(out string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 || fields[0] != "Python" {
		return "", fmt.Errorf("python.ParseVersion: 예상하지 못한 출력: %q", strings.TrimSpace(out))
	}
	return fields[1], nil
}

// FindInterpreter는 candidates를 순서대로 시도하여 제약식을 만족하는
// 첫 인터프리터를 반환한다. 아무것도 만족하지 못하면 ErrNoInterpreter를 반환한다.
// candidates가 비어있으면 DefaultCandidates를 사용한다.
func (a *Adapter) FindInterpreter(ctx context.Context, cons *semver.Constraints, candidates []string) (*Interpreter, error) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	for _, bin := range candidates {
		verStr, err := a.Version(ctx, bin)
		if err != nil {
			continue // 실행 파일 없음 또는 출력 파싱 실패 — 다음 후보
		}
		ver, err := semver.NewVersion(verStr)
		if err != nil {
			continue
		}
		if cons != nil && !cons.Check(ver) {
			continue
		}
		return &Interpreter{Path: bin, Version: verStr}, nil
	}
	return nil, fmt.Errorf("python.FindInterpreter: %w (후보: %s)", ErrNoInterpreter, strings.Join(candidates, ", "))
}

// EnsureVenv는 bin -m venv path로 가상환경을 생성한다.
// 이미 활성화된 가상환경에서 실행되어도 새 환경이 그 환경을 상속하지 않도록
// VIRTUAL_ENV/PYTHONHOME 환경변수를 억제한다.
// 실패 시 생성 도구의 출력을 그대로 에러에 담아 반환한다 — 복구나 재시도는 없다.
func (a *Adapter) EnsureVenv(ctx context.Context, bin, path string) error {
	out, err := a.cmd.RunWithEnv(ctx, SuppressVenvEnv(), bin, "-m", "venv", path)
	if err != nil {
		return fmt.Errorf("python.EnsureVenv: %s -m venv %s: %w\n%s", bin, path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// PipInstall은 가상환경 내부 python으로 requirements 파일을 설치한다.
func (a *Adapter) PipInstall(ctx context.Context, venvPath, reqPath string) error {
	bin := venv.PythonPath(venvPath)
	out, err := a.cmd.Run(ctx, bin, "-m", "pip", "install", "-r", reqPath)
	if err != nil {
		return fmt.Errorf("python.PipInstall: %s: %w\n%s", reqPath, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// SuppressVenvEnv는 현재 프로세스에 설정된 가상환경 관련 환경변수를
// 빈 문자열로 덮어쓰기 위한 env 맵을 반환한다.
// 설정되지 않은 키는 맵에 포함되지 않는다.
func SuppressVenvEnv() map[string]string {
	env := make(map[string]string)
	for _, key := range []string{"VIRTUAL_ENV", "PYTHONHOME", "__PYVENV_LAUNCHER__"} {
		if os.Getenv(key) != "" {
			env[key] = ""
		}
	}
	return env
}
