// 指示: miu200521358
// Package io_common は入出力アダプタ共通のエラー種別を提供する。
package io_common

import (
	"errors"
	"fmt"
)

// IoErrorKind は入出力エラーの種別を表す。
type IoErrorKind string

const (
	// IoErrorKindParseFailed は書式不正による解析失敗を表す。
	IoErrorKindParseFailed IoErrorKind = "parse_failed"
	// IoErrorKindReadFailed は入力ソースの読み取り失敗を表す。
	IoErrorKindReadFailed IoErrorKind = "read_failed"
	// IoErrorKindFileNotFound は入力ファイルの不在を表す。
	IoErrorKindFileNotFound IoErrorKind = "file_not_found"
	// IoErrorKindExtInvalid は未対応拡張子を表す。
	IoErrorKindExtInvalid IoErrorKind = "ext_invalid"
	// IoErrorKindStorageWriteFailed は永続化レイヤへの書き込み失敗を表す。
	IoErrorKindStorageWriteFailed IoErrorKind = "storage_write_failed"
)

// IoError は種別付き入出力エラーを表す。
type IoError struct {
	Kind    IoErrorKind
	Path    string
	Message string
	wrapped error
}

// Error はエラーメッセージを返す。
func (e *IoError) Error() string {
	switch {
	case e.Message != "" && e.Path != "":
		return fmt.Sprintf("%s: %s", e.Message, e.Path)
	case e.Message != "":
		return e.Message
	case e.Path != "":
		return fmt.Sprintf("入出力エラー(%s): %s", e.Kind, e.Path)
	default:
		return fmt.Sprintf("入出力エラー(%s)", e.Kind)
	}
}

// Unwrap は原因エラーを返す。
func (e *IoError) Unwrap() error {
	return e.wrapped
}

// NewIoParseFailed は解析失敗エラーを生成する。
func NewIoParseFailed(message string, cause error) error {
	return &IoError{Kind: IoErrorKindParseFailed, Message: message, wrapped: cause}
}

// NewIoReadFailed は読み取り失敗エラーを生成する。
func NewIoReadFailed(path string, cause error) error {
	return &IoError{Kind: IoErrorKindReadFailed, Path: path, Message: "入力ソースの読み取りに失敗しました", wrapped: cause}
}

// NewIoFileNotFound はファイル不在エラーを生成する。
func NewIoFileNotFound(path string, cause error) error {
	return &IoError{Kind: IoErrorKindFileNotFound, Path: path, Message: "入力ファイルが見つかりません", wrapped: cause}
}

// NewIoExtInvalid は未対応拡張子エラーを生成する。
func NewIoExtInvalid(path string, cause error) error {
	return &IoError{Kind: IoErrorKindExtInvalid, Path: path, Message: "入力形式が未対応です", wrapped: cause}
}

// NewStorageWriteFailed は永続化書き込み失敗エラーを生成する。
func NewStorageWriteFailed(path string, cause error) error {
	return &IoError{Kind: IoErrorKindStorageWriteFailed, Path: path, Message: "永続化レイヤへの書き込みに失敗しました", wrapped: cause}
}

// kindOf は種別付きエラーの種別を取り出す。
func kindOf(err error) (IoErrorKind, bool) {
	var ioErr *IoError
	if errors.As(err, &ioErr) {
		return ioErr.Kind, true
	}
	return "", false
}

// IsParseFailed は解析失敗エラーか判定する。
func IsParseFailed(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == IoErrorKindParseFailed
}

// IsReadFailed は読み取り失敗エラーか判定する。ファイル不在も読み取り失敗として扱う。
func IsReadFailed(err error) bool {
	kind, ok := kindOf(err)
	return ok && (kind == IoErrorKindReadFailed || kind == IoErrorKindFileNotFound)
}

// IsFileNotFound はファイル不在エラーか判定する。
func IsFileNotFound(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == IoErrorKindFileNotFound
}

// IsExtInvalid は未対応拡張子エラーか判定する。
func IsExtInvalid(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == IoErrorKindExtInvalid
}

// IsStorageWriteFailed は永続化書き込み失敗エラーか判定する。
func IsStorageWriteFailed(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == IoErrorKindStorageWriteFailed
}
