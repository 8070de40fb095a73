// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
	"github.com/tiendc/go-deepcopy"
)

// BoneKeyframe は1ボーン1フレームのローカル変換を表す。
type BoneKeyframe struct {
	// Time はクリップ先頭からの経過秒を表す。
	Time float64
	// Position はフレーム時点のローカル位置を表す。
	Position mmath.Vec3
	// Rotation はフレーム時点のローカル回転を表す。
	Rotation mmath.Quaternion
	// Scale はフレーム時点のローカルスケールを表す。
	Scale mmath.Vec3
}

// BoneKeyframeTrack は1ボーン分のキーフレーム列を表す。
type BoneKeyframeTrack struct {
	// BoneName は対象ボーン名を表す。
	BoneName string
	// BoneIndex は対象ボーンの安定indexを表す。
	BoneIndex int
	// Keyframes は時刻昇順のキーフレーム列を表す。
	Keyframes []BoneKeyframe
}

// MotionClip は名前付きモーションクリップを表す。
type MotionClip struct {
	// Name はクリップ名を表す。未宣言クリップには既定名が割り当てられる。
	Name string
	// FrameCount は宣言フレーム数を表す。
	FrameCount int
	// FrameTime は1フレームあたりの秒数を表す。
	FrameTime float64
	// Tracks はボーンごとのキーフレームトラックを表す。
	Tracks []*BoneKeyframeTrack
}

// Duration はクリップ全体の秒数を返す。
func (c *MotionClip) Duration() float64 {
	if c == nil {
		return 0
	}
	return float64(c.FrameCount) * c.FrameTime
}

// Copy はクリップの完全な複製を生成する。
func (c *MotionClip) Copy() (*MotionClip, error) {
	if c == nil {
		return nil, fmt.Errorf("複製対象のモーションクリップが未設定です")
	}
	copied := &MotionClip{}
	if err := deepcopy.Copy(copied, c); err != nil {
		return nil, fmt.Errorf("モーションクリップの複製に失敗しました: %w", err)
	}
	return copied, nil
}

// MotionSet はインポート結果一式(スケルトン+クリップ)を表す。
type MotionSet struct {
	// Armature はルートボーンを包むコンテナを表す。
	Armature *Armature
	// Bones はスケルトン本体を表す。Armature.Bones と同一実体。
	Bones *BoneCollection
	// Clips はインポートされたモーションクリップ一覧を表す。
	Clips []*MotionClip
	// Warnings は取り込み自体は成功したが注意が必要な事象の警告ID一覧を表す。
	Warnings []string
}
