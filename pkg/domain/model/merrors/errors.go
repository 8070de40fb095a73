// 指示: miu200521358
// Package merrors はドメインモデル固有のエラー種別を提供する。
package merrors

import (
	"errors"
	"fmt"
)

// NameConflictError はコレクション内でのボーン名重複を表す。
type NameConflictError struct {
	Name string
}

// Error はエラーメッセージを返す。
func (e *NameConflictError) Error() string {
	return fmt.Sprintf("ボーン名が重複しています: %s", e.Name)
}

// NewNameConflictError は名前重複エラーを生成する。
func NewNameConflictError(name string) error {
	return &NameConflictError{Name: name}
}

// IsNameConflictError は名前重複エラーか判定する。
func IsNameConflictError(err error) bool {
	var target *NameConflictError
	return errors.As(err, &target)
}

// BoneNotFoundError はindexまたは名前に対応するボーンの不在を表す。
type BoneNotFoundError struct {
	Index int
	Name  string
}

// Error はエラーメッセージを返す。
func (e *BoneNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("ボーンが見つかりません: name=%s", e.Name)
	}
	return fmt.Sprintf("ボーンが見つかりません: index=%d", e.Index)
}

// NewBoneNotFoundError はindex指定のボーン不在エラーを生成する。
func NewBoneNotFoundError(index int) error {
	return &BoneNotFoundError{Index: index}
}

// IsBoneNotFoundError はボーン不在エラーか判定する。
func IsBoneNotFoundError(err error) bool {
	var target *BoneNotFoundError
	return errors.As(err, &target)
}
