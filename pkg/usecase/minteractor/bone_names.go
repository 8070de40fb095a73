// 指示: miu200521358
package minteractor

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

// defaultBoneNamesToml はボーン名ヒューリスティックの組み込み既定値を保持する。
//
//go:embed assets/bone_names.toml
var defaultBoneNamesToml string

// MirrorNameConfig はミラー対象解決に使う名前規約を表す。
type MirrorNameConfig struct {
	// VendorPrefixes は左右判定前に取り除くベンダー固有プレフィックスを表す。
	VendorPrefixes []string `toml:"vendor_prefixes"`
	// LeftMarkers は左側マーカー一覧を表す。
	LeftMarkers []string `toml:"left_markers"`
	// RightMarkers は右側マーカー一覧を表す。
	RightMarkers []string `toml:"right_markers"`
}

// CorrectionNameConfig は補正計算の基準ボーン解決に使う別名表を表す。
type CorrectionNameConfig struct {
	HipsAliases     []string `toml:"hips_aliases"`
	SpineAliases    []string `toml:"spine_aliases"`
	LeftHipAliases  []string `toml:"left_hip_aliases"`
	RightHipAliases []string `toml:"right_hip_aliases"`
	LeftArmAliases  []string `toml:"left_arm_aliases"`
	RightArmAliases []string `toml:"right_arm_aliases"`
}

// BoneNameConfig はボーン名ヒューリスティック設定一式を表す。
type BoneNameConfig struct {
	Mirror     MirrorNameConfig     `toml:"mirror"`
	Correction CorrectionNameConfig `toml:"correction"`
}

// DefaultBoneNameConfig は組み込み既定値の設定を返す。
func DefaultBoneNameConfig() *BoneNameConfig {
	config := &BoneNameConfig{}
	// 組み込みTOMLの解析失敗はビルド成果物の破損を意味する。
	if err := toml.Unmarshal([]byte(defaultBoneNamesToml), config); err != nil {
		panic(fmt.Sprintf("組み込みボーン名設定の解析に失敗しました: %v", err))
	}
	return config
}

// LoadBoneNameConfig はTOMLファイルからボーン名設定を読み込む。
// ファイルで未定義のセクションは組み込み既定値を保つ。
func LoadBoneNameConfig(path string) (*BoneNameConfig, error) {
	config := DefaultBoneNameConfig()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("ボーン名設定の読み込みに失敗しました: %s: %w", path, err)
	}
	return config, nil
}
