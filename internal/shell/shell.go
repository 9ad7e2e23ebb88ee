package shell

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/hbjs97/venvx/internal/venv"
)

// Activate는 가상환경 활성화를 위한 shell 명령을 생성한다.
// promptLabel이 비어있지 않으면 프롬프트 변수도 설정한다.
// 스니펫 전체를 VIRTUAL_ENV 비교로 감싼다 — hook이 프롬프트/디렉토리 이동마다
// 재실행하므로 같은 환경의 재활성화는 no-op이어야 하고, 다른 환경으로 전환할 때는
// 이전 PATH를 먼저 복원해야 bin 항목이 누적되지 않는다.
func Activate(venvPath, promptLabel, shellType string) string {
	binDir := venv.BinDir(venvPath)
	switch shellType {
	case "fish":
		var b strings.Builder
		fmt.Fprintf(&b, "if test \"$VIRTUAL_ENV\" != %q\n", venvPath)
		b.WriteString("    if set -q _VENVX_OLD_PATH\n        set -gx PATH $_VENVX_OLD_PATH\n    end\n")
		b.WriteString("    set -gx _VENVX_OLD_PATH $PATH\n")
		fmt.Fprintf(&b, "    set -gx VIRTUAL_ENV %q\n", venvPath)
		fmt.Fprintf(&b, "    set -gx PATH %q $PATH\n", binDir)
		b.WriteString("    set -e PYTHONHOME\n")
		if promptLabel != "" {
			fmt.Fprintf(&b, "    set -gx VIRTUAL_ENV_PROMPT %q\n", promptLabel)
		}
		b.WriteString("end\n")
		return b.String()
	default: // bash, zsh, sh
		var b strings.Builder
		fmt.Fprintf(&b, "if [ \"${VIRTUAL_ENV:-}\" != %s ]; then\n", quotePosix(venvPath))
		b.WriteString("    if [ -n \"${_VENVX_OLD_PATH:-}\" ]; then export PATH=\"$_VENVX_OLD_PATH\"; fi\n")
		b.WriteString("    export _VENVX_OLD_PATH=\"$PATH\"\n")
		fmt.Fprintf(&b, "    export VIRTUAL_ENV=%s\n", quotePosix(venvPath))
		fmt.Fprintf(&b, "    export PATH=%s:\"$PATH\"\n", quotePosix(binDir))
		b.WriteString("    unset PYTHONHOME\n")
		if promptLabel != "" {
			fmt.Fprintf(&b, "    export VIRTUAL_ENV_PROMPT=%s\n", quotePosix(promptLabel))
		}
		b.WriteString("    hash -r 2>/dev/null || true\nfi\n")
		return b.String()
	}
}

// Deactivate는 가상환경 비활성화를 위한 shell 명령을 생성한다.
// _VENVX_OLD_PATH가 없으면 PATH는 건드리지 않는다 — venvx가 활성화하지 않은
// 세션에서 eval되어도 안전한 no-op이어야 한다.
func Deactivate(shellType string) string {
	switch shellType {
	case "fish":
		return `if set -q _VENVX_OLD_PATH
    set -gx PATH $_VENVX_OLD_PATH
    set -e _VENVX_OLD_PATH
end
set -e VIRTUAL_ENV
set -e VIRTUAL_ENV_PROMPT
`
	default:
		return `if [ -n "${_VENVX_OLD_PATH:-}" ]; then export PATH="$_VENVX_OLD_PATH"; unset _VENVX_OLD_PATH; fi
unset VIRTUAL_ENV
unset VIRTUAL_ENV_PROMPT
hash -r 2>/dev/null || true
`
	}
}

// HookSnippet는 셸 디렉토리 변경 hook 스니펫을 반환한다.
// hook은 venvx activate를 호출한다 — 환경을 생성하지 않는 경로만 탄다.
func HookSnippet(shellType string) string {
	switch shellType {
	case "zsh":
		return `# venvx shell integration (zsh)
_venvx_chpwd() {
  eval "$(venvx activate --shell zsh 2>/dev/null)"
}
chpwd_functions+=(_venvx_chpwd)
`
	case "bash":
		return `# venvx shell integration (bash)
_venvx_prompt_command() {
  eval "$(venvx activate --shell bash 2>/dev/null)"
}
PROMPT_COMMAND="_venvx_prompt_command;${PROMPT_COMMAND}"
`
	case "fish":
		return `# venvx shell integration (fish)
function _venvx_chpwd --on-variable PWD
  eval (venvx activate --shell fish 2>/dev/null)
end
`
	default:
		return ""
	}
}

// quotePosix는 POSIX 셸에 안전하게 삽입 가능한 형태로 문자열을 인용한다.
func quotePosix(s string) string {
	quoted, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return fmt.Sprintf("%q", s) // NUL 등 인용 불가 문자 — %q로 대체
	}
	return quoted
}
