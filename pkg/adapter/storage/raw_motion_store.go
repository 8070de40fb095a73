// 指示: miu200521358
// Package storage はインポート元テキストの永続化レイヤを提供する。
// 解析済み構造は保存せず、取り出し時にインポータを再実行する。
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/miu200521358/mu_bvh_retarget/pkg/adapter/io_common"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
)

const (
	rawMotionFileExt = ".bvh"
	metaFileExt      = ".toml"
	storeDirMode     = 0o755
	storeFileMode    = 0o644
)

// RawMotionRecord は保存済み生テキスト1件のメタ情報を表す。
type RawMotionRecord struct {
	// ID は生成された保存識別子を表す。
	ID string `toml:"id"`
	// Name は保存時に与えられた表示名を表す。
	Name string `toml:"name"`
	// StoredAt は保存時刻を表す。
	StoredAt time.Time `toml:"stored_at"`
}

// MotionParser は保存テキストの再インポート契約を表す。
type MotionParser interface {
	// Parse はテキストを解析してスケルトンとクリップを構築する。
	Parse(clipName string, text string) (*model.MotionSet, error)
}

// RawMotionStore は生テキストをID+時刻キーでディレクトリへ保存するストアを表す。
type RawMotionStore struct {
	dir     string
	parser  MotionParser
	nextSeq int
	now     func() time.Time
}

// NewRawMotionStore は保存先ディレクトリと再インポート用パーサでストアを生成する。
func NewRawMotionStore(dir string, parser MotionParser) *RawMotionStore {
	return &RawMotionStore{
		dir:    dir,
		parser: parser,
		now:    time.Now,
	}
}

// Store は生テキストを保存し、生成した識別子付きレコードを返す。
func (s *RawMotionStore) Store(name string, rawText string) (RawMotionRecord, error) {
	if s == nil || strings.TrimSpace(s.dir) == "" {
		return RawMotionRecord{}, io_common.NewStorageWriteFailed("", fmt.Errorf("保存先ディレクトリが未設定です"))
	}
	if strings.TrimSpace(rawText) == "" {
		return RawMotionRecord{}, io_common.NewStorageWriteFailed(s.dir, fmt.Errorf("保存対象テキストが空です"))
	}
	if err := os.MkdirAll(s.dir, storeDirMode); err != nil {
		return RawMotionRecord{}, io_common.NewStorageWriteFailed(s.dir, err)
	}

	storedAt := s.now().UTC()
	record := RawMotionRecord{
		ID:       s.generateID(storedAt),
		Name:     strings.TrimSpace(name),
		StoredAt: storedAt,
	}

	rawPath := filepath.Join(s.dir, record.ID+rawMotionFileExt)
	if err := os.WriteFile(rawPath, []byte(rawText), storeFileMode); err != nil {
		return RawMotionRecord{}, io_common.NewStorageWriteFailed(rawPath, err)
	}

	metaPath := filepath.Join(s.dir, record.ID+metaFileExt)
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return RawMotionRecord{}, io_common.NewStorageWriteFailed(metaPath, err)
	}
	defer metaFile.Close()
	if err := toml.NewEncoder(metaFile).Encode(record); err != nil {
		return RawMotionRecord{}, io_common.NewStorageWriteFailed(metaPath, err)
	}
	return record, nil
}

// LoadRaw は識別子指定で保存済み生テキストを返す。
func (s *RawMotionStore) LoadRaw(id string) (string, error) {
	rawPath := filepath.Join(s.dir, id+rawMotionFileExt)
	b, err := os.ReadFile(rawPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", io_common.NewIoFileNotFound(rawPath, err)
		}
		return "", io_common.NewIoReadFailed(rawPath, err)
	}
	return string(b), nil
}

// LoadMotion は識別子指定で生テキストを読み戻し、インポータを再実行して返す。
func (s *RawMotionStore) LoadMotion(id string) (*model.MotionSet, error) {
	if s == nil || s.parser == nil {
		return nil, fmt.Errorf("再インポート用パーサが未設定です")
	}
	record, err := s.loadRecord(id)
	if err != nil {
		return nil, err
	}
	rawText, err := s.LoadRaw(id)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(record.Name, rawText)
}

// List は保存済みレコード一覧を保存時刻昇順で返す。
func (s *RawMotionStore) List() ([]RawMotionRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, io_common.NewIoReadFailed(s.dir, err)
	}
	records := make([]RawMotionRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), metaFileExt) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		record, err := s.loadRecord(id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].StoredAt.Equal(records[j].StoredAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].StoredAt.Before(records[j].StoredAt)
	})
	return records, nil
}

// loadRecord は識別子指定でメタ情報を読み込む。
func (s *RawMotionStore) loadRecord(id string) (RawMotionRecord, error) {
	metaPath := filepath.Join(s.dir, id+metaFileExt)
	record := RawMotionRecord{}
	if _, err := toml.DecodeFile(metaPath, &record); err != nil {
		if os.IsNotExist(err) {
			return RawMotionRecord{}, io_common.NewIoFileNotFound(metaPath, err)
		}
		return RawMotionRecord{}, io_common.NewIoParseFailed("保存メタ情報の解析に失敗しました: "+metaPath, err)
	}
	return record, nil
}

// generateID は保存時刻と連番から識別子を生成する。
func (s *RawMotionStore) generateID(storedAt time.Time) string {
	s.nextSeq++
	return fmt.Sprintf("%s_%04d", storedAt.Format("20060102T150405"), s.nextSeq)
}
