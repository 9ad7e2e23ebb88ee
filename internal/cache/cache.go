package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache는 인터프리터 탐색 결과 캐시다.
// 셸 hook이 디렉토리 이동마다 venvx를 호출하므로, 매번 python 후보들을
// 실행해보는 비용을 줄이기 위해 제약식별 판정 결과를 저장한다.
type Cache struct {
	Version int              `json:"version"`
	Entries map[string]Entry `json:"entries"`
}

// Entry는 하나의 캐시 항목이다. 키는 python 제약식 문자열이다.
type Entry struct {
	Interpreter string `json:"interpreter"`
	PyVersion   string `json:"py_version"`
	ResolvedAt  string `json:"resolved_at"`
	ConfigHash  string `json:"config_hash"`
}

// New는 빈 캐시를 생성한다.
func New() *Cache {
	return &Cache{Version: 1, Entries: make(map[string]Entry)}
}

// Load는 캐시 파일을 파싱한다. 파일 없음/파싱 실패 시 빈 캐시 반환 (graceful).
func Load(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache.Load: %w", err)
	}
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return New(), nil
	}
	if c.Entries == nil {
		c.Entries = make(map[string]Entry)
	}
	return &c, nil
}

// Lookup은 제약식으로 캐시를 조회한다. TTL과 config_hash가 유효하고
// 인터프리터 실행 파일이 여전히 존재해야 hit다.
func (c *Cache) Lookup(constraint, configHash string, ttlDays int) (*Entry, bool) {
	e, ok := c.Entries[constraint]
	if !ok {
		return nil, false
	}
	if e.ConfigHash != configHash {
		return nil, false
	}
	resolved, err := time.Parse(time.RFC3339, e.ResolvedAt)
	if err != nil {
		return nil, false
	}
	if time.Since(resolved) > time.Duration(ttlDays)*24*time.Hour {
		return nil, false
	}
	if filepath.IsAbs(e.Interpreter) {
		if _, err := os.Stat(e.Interpreter); err != nil {
			return nil, false
		}
	}
	return &e, true
}

// Set은 캐시 항목을 추가하거나 갱신한다.
func (c *Cache) Set(constraint string, entry Entry) {
	c.Entries[constraint] = entry
}

// Save는 캐시를 JSON 파일로 저장한다 (0600 권한).
func (c *Cache) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("cache.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cache.Save: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
