package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbjs97/venvx/internal/cli"
	"github.com/hbjs97/venvx/internal/testutil"
)

// newTestApp creates an App with a FakeCommander, a nonexistent config path
// (defaults apply) and a temp cache path.
func newTestApp(t *testing.T, fc *testutil.FakeCommander) *cli.App {
	t.Helper()
	return &cli.App{
		Commander: fc,
		CfgPath:   filepath.Join(t.TempDir(), "config.toml"),
		CachePath: testutil.TempCachePath(t),
		Logger:    log.New(io.Discard),
	}
}

// execute runs the command with the given args and returns stdout, stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if args == nil {
		args = []string{} // nil이면 cobra가 os.Args로 fallback한다
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// chdir stands in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func registerPython3(fc *testutil.FakeCommander) {
	fc.Register("python3 --version", "Python 3.11.2", nil)
	fc.Register("python3 -m venv", "", nil)
}

// --- Bootstrap (root command) tests ---

func TestRoot_CreatesVenvWhenAbsent(t *testing.T) {
	dir := testutil.TempProject(t)
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	registerPython3(fc)

	app := newTestApp(t, fc)
	stdout, stderr, err := execute(t, app.NewRootCmd())
	require.NoError(t, err)

	venvPath := filepath.Join(dir, "venv")
	assert.True(t, fc.Called("python3 -m venv "+venvPath))
	assert.Contains(t, stderr, "가상환경 생성 및 활성화")
	assert.Contains(t, stderr, venvPath)
	assert.Contains(t, stdout, "export VIRTUAL_ENV=")
	assert.Contains(t, stdout, venvPath)
}

func TestRoot_ReusesExistingVenv(t *testing.T) {
	dir := testutil.TempProjectWithVenv(t, "3.11.2")
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	registerPython3(fc)

	app := newTestApp(t, fc)
	stdout, stderr, err := execute(t, app.NewRootCmd())
	require.NoError(t, err)

	venvPath := filepath.Join(dir, "venv")
	assert.Zero(t, fc.CallCount("python3 -m venv"))
	assert.Contains(t, stderr, "기존 가상환경 활성화")
	assert.Contains(t, stderr, venvPath)
	assert.Contains(t, stdout, "export VIRTUAL_ENV=")
}

func TestRoot_Idempotent(t *testing.T) {
	dir := testutil.TempProject(t)
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	registerPython3(fc)

	app := newTestApp(t, fc)
	_, _, err := execute(t, app.NewRootCmd())
	require.NoError(t, err)
	require.Equal(t, 1, fc.CallCount("python3 -m venv"))

	// 생성 도구의 효과를 재현한 뒤 두 번째 실행
	testutil.WriteVenv(t, filepath.Join(dir, "venv"), "3.11.2")

	_, stderr, err := execute(t, app.NewRootCmd())
	require.NoError(t, err)
	assert.Equal(t, 1, fc.CallCount("python3 -m venv"))
	assert.Contains(t, stderr, "기존 가상환경 활성화")
}

func TestRoot_MessagesNameCurrentDirectory(t *testing.T) {
	dir := testutil.TempProjectWithVenv(t, "3.11.2")
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc)
	stdout, stderr, err := execute(t, app.NewRootCmd())
	require.NoError(t, err)

	venvPath := filepath.Join(dir, "venv")
	assert.Contains(t, stderr, venvPath)
	assert.Contains(t, stdout, venvPath)
}

func TestRoot_NoWritesOutsideVenvDir(t *testing.T) {
	dir := testutil.TempProject(t)
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	registerPython3(fc)

	app := newTestApp(t, fc)
	_, _, err := execute(t, app.NewRootCmd())
	require.NoError(t, err)

	// 생성은 전부 외부 도구에 위임된다 — venvx 자신은 cwd에 아무것도 쓰지 않는다
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// 설정 파일 없는 실행은 캐시도 남기지 않는다
	_, statErr := os.Stat(app.CachePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRoot_CachesInterpreterWhenConfigured(t *testing.T) {
	dir := testutil.TempProject(t)
	chdir(t, dir)

	cfgPath := testutil.TempConfigFile(t, "version = 1\n")

	fc := testutil.NewFakeCommander()
	registerPython3(fc)

	app := newTestApp(t, fc)
	app.CfgPath = cfgPath
	_, _, err := execute(t, app.NewRootCmd())
	require.NoError(t, err)

	_, statErr := os.Stat(app.CachePath)
	require.NoError(t, statErr)
	require.Equal(t, 1, fc.CallCount("python3 --version"))

	// 두 번째 프로젝트에서는 캐시 hit — 인터프리터 탐색을 반복하지 않는다
	chdir(t, testutil.TempProject(t))
	_, _, err = execute(t, app.NewRootCmd())
	require.NoError(t, err)
	assert.Equal(t, 1, fc.CallCount("python3 --version"))
	assert.Equal(t, 2, fc.CallCount("python3 -m venv"))
}

func TestRoot_NoInterpreter(t *testing.T) {
	dir := testutil.TempProject(t)
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	fc.Register("python3 --version", "", fmt.Errorf("not found"))
	fc.Register("python --version", "", fmt.Errorf("not found"))

	app := newTestApp(t, fc)
	_, _, err := execute(t, app.NewRootCmd())
	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrNoInterpreter))
	assert.Equal(t, cli.ExitNoInterpreter, cli.MapExitCode(err))
}

func TestRoot_CreationFailurePropagatesToolOutput(t *testing.T) {
	dir := testutil.TempProject(t)
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	fc.Register("python3 --version", "Python 3.11.2", nil)
	fc.Register("python3 -m venv", "Error: Permission denied", fmt.Errorf("exit status 1"))

	app := newTestApp(t, fc)
	_, _, err := execute(t, app.NewRootCmd())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Permission denied")
	assert.Equal(t, cli.ExitGeneral, cli.MapExitCode(err))
}

func TestRoot_AutoInstallRequirements(t *testing.T) {
	dir := testutil.TempProject(t)
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("requests\n"), 0644))

	cfgPath := testutil.TempConfigFile(t, "auto_install_requirements = true\n")

	fc := testutil.NewFakeCommander()
	registerPython3(fc)
	venvPython := filepath.Join(dir, "venv", "bin", "python")
	fc.Register(venvPython+" -m pip install", "", nil)

	app := newTestApp(t, fc)
	app.CfgPath = cfgPath
	_, _, err := execute(t, app.NewRootCmd())
	require.NoError(t, err)
	assert.True(t, fc.Called(venvPython+" -m pip install -r "+filepath.Join(dir, "requirements.txt")))
}

func TestRoot_CustomVenvDir(t *testing.T) {
	dir := testutil.TempProject(t)
	chdir(t, dir)

	cfgPath := testutil.TempConfigFile(t, `venv_dir = ".venv"`+"\n")

	fc := testutil.NewFakeCommander()
	registerPython3(fc)

	app := newTestApp(t, fc)
	app.CfgPath = cfgPath
	_, stderr, err := execute(t, app.NewRootCmd())
	require.NoError(t, err)
	assert.True(t, fc.Called("python3 -m venv "+filepath.Join(dir, ".venv")))
	assert.Contains(t, stderr, filepath.Join(dir, ".venv"))
}

func TestRoot_FishShellFlag(t *testing.T) {
	dir := testutil.TempProjectWithVenv(t, "3.11.2")
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc)
	stdout, _, err := execute(t, app.NewRootCmd(), "--shell", "fish")
	require.NoError(t, err)
	assert.Contains(t, stdout, "set -gx VIRTUAL_ENV")
}

// --- activate / deactivate tests ---

func TestActivateCmd_VenvPresent(t *testing.T) {
	dir := testutil.TempProjectWithVenv(t, "3.11.2")
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc)
	stdout, _, err := execute(t, app.NewRootCmd(), "activate", "--shell", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "export VIRTUAL_ENV=")
	assert.Empty(t, fc.Calls, "activate must never invoke external tools")
}

func TestActivateCmd_VenvAbsentEmitsDeactivate(t *testing.T) {
	dir := testutil.TempProject(t)
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc)
	stdout, _, err := execute(t, app.NewRootCmd(), "activate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "unset VIRTUAL_ENV")
	assert.Empty(t, fc.Calls)
}

func TestActivateCmd_HookOnly(t *testing.T) {
	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc)
	stdout, _, err := execute(t, app.NewRootCmd(), "activate", "--hook", "--shell", "zsh")
	require.NoError(t, err)
	assert.Contains(t, stdout, "chpwd_functions")
}

func TestDeactivateCmd(t *testing.T) {
	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc)
	stdout, _, err := execute(t, app.NewRootCmd(), "deactivate", "--shell", "fish")
	require.NoError(t, err)
	assert.Contains(t, stdout, "set -e VIRTUAL_ENV")
}

// --- status tests ---

func TestStatusCmd_VenvPresent(t *testing.T) {
	dir := testutil.TempProjectWithVenv(t, "3.11.2")
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc)
	stdout, _, err := execute(t, app.NewRootCmd(), "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(dir, "venv"))
	assert.Contains(t, stdout, "3.11.2")
}

func TestStatusCmd_VenvAbsent(t *testing.T) {
	dir := testutil.TempProject(t)
	chdir(t, dir)

	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc)
	stdout, _, err := execute(t, app.NewRootCmd(), "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "가상환경 없음")
}

// --- setup tests ---

func TestSetupCmd_WritesConfigTemplate(t *testing.T) {
	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc)

	stdout, _, err := execute(t, app.NewRootCmd(), "setup", "--no-hook")
	require.NoError(t, err)
	assert.Contains(t, stdout, "설정 파일이 생성되었습니다")

	content, err := os.ReadFile(app.CfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "venvx configuration file")
}

func TestSetupCmd_ExistingConfigKept(t *testing.T) {
	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc)
	require.NoError(t, os.WriteFile(app.CfgPath, []byte("version = 1\n"), 0600))

	stdout, _, err := execute(t, app.NewRootCmd(), "setup", "--no-hook")
	require.NoError(t, err)
	assert.Contains(t, stdout, "이미 존재합니다")

	content, err := os.ReadFile(app.CfgPath)
	require.NoError(t, err)
	assert.Equal(t, "version = 1\n", string(content))
}

// --- exit code mapping ---

func TestMapExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitSuccess, cli.MapExitCode(nil))
	assert.Equal(t, cli.ExitGeneral, cli.MapExitCode(errors.New("boom")))
	assert.Equal(t, cli.ExitNoInterpreter, cli.MapExitCode(fmt.Errorf("wrap: %w", cli.ErrNoInterpreter)))
	assert.Equal(t, cli.ExitConfigError, cli.MapExitCode(fmt.Errorf("wrap: %w", cli.ErrConfig)))
}
