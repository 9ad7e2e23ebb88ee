package venv

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Exists는 path가 디렉토리로 존재하는지 확인한다.
// 내부 레이아웃 유효성은 검사하지 않는다 — 디렉토리가 있으면 기존 환경으로 간주한다.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// BinDir는 가상환경의 실행 파일 디렉토리 경로를 반환한다.
func BinDir(venvPath string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvPath, "Scripts")
	}
	return filepath.Join(venvPath, "bin")
}

// PythonPath는 가상환경 내부 python 실행 파일 경로를 반환한다.
func PythonPath(venvPath string) string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}
	return filepath.Join(BinDir(venvPath), name)
}

// ActivatePath는 가상환경의 activate 스크립트 경로를 반환한다.
func ActivatePath(venvPath string) string {
	return filepath.Join(BinDir(venvPath), "activate")
}

// IsActive는 현재 프로세스 환경에서 해당 가상환경이 활성화되어 있는지 확인한다.
func IsActive(venvPath string) bool {
	active := os.Getenv("VIRTUAL_ENV")
	if active == "" {
		return false
	}
	return filepath.Clean(active) == filepath.Clean(venvPath)
}

// Info는 pyvenv.cfg에서 읽은 가상환경 메타데이터다.
// 필드는 python -m venv가 쓰는 키를 그대로 따른다.
type Info struct {
	Home    string
	Version string
	Prompt  string
}

// ReadInfo는 가상환경의 pyvenv.cfg를 파싱한다.
// 파일이 없거나 읽을 수 없으면 에러를 반환한다 — bootstrap 분기에는 사용하지 않고
// status 표시에만 사용한다.
func ReadInfo(venvPath string) (*Info, error) {
	path := filepath.Join(venvPath, "pyvenv.cfg")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("venv.ReadInfo: %w", err)
	}
	defer f.Close()

	info := &Info{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "home":
			info.Home = value
		case "version", "version_info":
			info.Version = value
		case "prompt":
			info.Prompt = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("venv.ReadInfo: %w", err)
	}
	return info, nil
}
