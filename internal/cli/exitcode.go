package cli

import (
	"errors"
)

// ExitCode는 venvx의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다 (생성 도구 실패 포함).
	ExitGeneral ExitCode = 1
	// ExitNoInterpreter는 적합한 python 인터프리터가 없는 경우다.
	ExitNoInterpreter ExitCode = 2
	// ExitConfigError는 설정 파일 오류다.
	ExitConfigError ExitCode = 3
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrNoInterpreter):
		return ExitNoInterpreter
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitGeneral
	}
}
