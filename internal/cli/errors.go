package cli

import (
	"github.com/hbjs97/venvx/internal/config"
	"github.com/hbjs97/venvx/internal/python"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrNoInterpreter는 적합한 python 인터프리터가 없을 때의 sentinel error다.
	ErrNoInterpreter = python.ErrNoInterpreter
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
)
