// 指示: miu200521358
// Package moutput は編集ユースケースが依存する外部コラボレータの契約を表す。
package moutput

import (
	"github.com/miu200521358/mu_bvh_retarget/pkg/adapter/storage"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
)

// RawMotionRecord は保存済み生テキストのメタ情報を表す。
type RawMotionRecord = storage.RawMotionRecord

// IMotionReader はモーションファイルの読み込み契約を表す。
type IMotionReader interface {
	// CanLoad はパスが読み込み対象形式か判定する。
	CanLoad(path string) bool
	// InferName はパスから表示名を推定する。
	InferName(path string) string
	// Load はファイルを読み込みスケルトンとクリップを返す。
	Load(path string) (*model.MotionSet, error)
}

// IRawMotionStore はインポート元テキストの永続化契約を表す。
type IRawMotionStore interface {
	// Store は生テキストを保存し、生成した識別子付きレコードを返す。
	Store(name string, rawText string) (RawMotionRecord, error)
	// LoadMotion は識別子指定で保存テキストを再インポートする。
	LoadMotion(id string) (*model.MotionSet, error)
}

// IRayIntersector はレイとメッシュ群の交差判定契約を表す。交差計算の実装は外部コラボレータが担う。
type IRayIntersector interface {
	// IntersectMeshes は最初に交差したメッシュとワールド空間の交点を返す。交差なしはfalse。
	IntersectMeshes(ray model.Ray, meshes []*model.Mesh) (*model.Mesh, mmath.Vec3, bool)
}
