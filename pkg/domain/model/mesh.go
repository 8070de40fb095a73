// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
)

// Mesh はスナップ対象の参照メッシュを表す。
// 描画は外部コラボレータの責務のため、ここでは頂点群とTRS変換のみを持つ。
type Mesh struct {
	name string

	// Position はメッシュのワールド位置を表す。
	Position mmath.Vec3
	// Rotation はメッシュのワールド回転を表す。
	Rotation mmath.Quaternion
	// Scale はメッシュのワールドスケールを表す。
	Scale mmath.Vec3

	// Vertices はローカル空間の頂点位置一覧を表す。
	Vertices []mmath.Vec3
}

// NewMesh は頂点群を持つメッシュを生成する。
func NewMesh(name string, vertices []mmath.Vec3) *Mesh {
	return &Mesh{
		name:     name,
		Rotation: mmath.NewQuaternion(),
		Scale:    mmath.ONE_VEC3,
		Vertices: vertices,
	}
}

// Name はメッシュ名を返す。
func (m *Mesh) Name() string {
	return m.name
}

// WorldToLocal はワールド座標点をメッシュローカル座標へ変換する。
func (m *Mesh) WorldToLocal(worldPoint mmath.Vec3) mmath.Vec3 {
	relative := m.Rotation.Inverted().MulVec3(worldPoint.Subed(m.Position))
	return relative.Dived(m.Scale)
}

// LocalToWorld はメッシュローカル座標点をワールド座標へ変換する。
func (m *Mesh) LocalToWorld(localPoint mmath.Vec3) mmath.Vec3 {
	return m.Position.Added(m.Rotation.MulVec3(m.Scale.Muled(localPoint)))
}
