package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("설정 파일 오류")

// Config는 venvx 설정 파일의 최상위 구조체다.
// 설정 파일은 선택 사항이다 — 파일이 없으면 전부 기본값으로 동작한다.
type Config struct {
	Version                 int    `toml:"version"`
	VenvDir                 string `toml:"venv_dir"`
	Python                  string `toml:"python"`
	PythonBin               string `toml:"python_bin"`
	Prompt                  *bool  `toml:"prompt"`
	AutoInstallRequirements bool   `toml:"auto_install_requirements"`
	CacheTTLDays            int    `toml:"cache_ttl_days"`
}

// Default는 설정 파일 없이 동작할 때의 기본 Config를 반환한다.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load는 config.toml을 파싱하여 Config를 반환한다.
// 파일이 없으면 기본 Config를 반환한다 (venvx는 설정 없이 동작해야 한다).
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsPrompt는 prompt 설정값을 반환한다.
func (c *Config) IsPrompt() bool {
	if c.Prompt == nil {
		return true
	}
	return *c.Prompt
}

// Constraint는 python 제약식을 파싱하여 반환한다.
// validate를 통과한 Config라면 실패하지 않는다.
func (c *Config) Constraint() (*semver.Constraints, error) {
	cons, err := semver.NewConstraint(c.Python)
	if err != nil {
		return nil, fmt.Errorf("config.Constraint: %w: python = %q", ErrConfig, c.Python)
	}
	return cons, nil
}

// ConfigHash는 설정 내용의 sha256 해시 앞 12자리를 반환한다.
// 캐시 무효화 판정에 사용한다.
func (c *Config) ConfigHash() string {
	var buf bytes.Buffer
	_ = toml.NewEncoder(&buf).Encode(c) // 인코딩 실패 시 빈 버퍼 해시
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])[:12]
}

func (c *Config) applyDefaults() {
	if c.VenvDir == "" {
		c.VenvDir = "venv"
	}
	if c.Python == "" {
		c.Python = ">=3.8"
	}
	if c.Prompt == nil {
		t := true
		c.Prompt = &t
	}
	if c.CacheTTLDays == 0 {
		c.CacheTTLDays = 7
	}
}

func (c *Config) validate() error {
	if filepath.IsAbs(c.VenvDir) || c.VenvDir != filepath.Base(c.VenvDir) || c.VenvDir == "." || c.VenvDir == ".." {
		return fmt.Errorf("config.Load: %w: venv_dir은 단일 디렉토리 이름이어야 합니다: %q", ErrConfig, c.VenvDir)
	}
	if _, err := semver.NewConstraint(c.Python); err != nil {
		return fmt.Errorf("config.Load: %w: python 제약식 파싱 실패: %q", ErrConfig, c.Python)
	}
	return nil
}
