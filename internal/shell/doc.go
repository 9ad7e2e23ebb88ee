// Package shell generates eval-able snippets for virtual environment
// activation. A child process cannot mutate its parent shell's environment,
// so venvx prints export/unset instructions (bash, zsh, fish) for the
// invoking shell to source, plus hook snippets (chpwd for Zsh,
// PROMPT_COMMAND for Bash, --on-variable for Fish) that re-run activation
// on directory change.
package shell
