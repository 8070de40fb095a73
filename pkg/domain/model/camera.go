// 指示: miu200521358
package model

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
)

// Ray はワールド空間の半直線を表す。
type Ray struct {
	// Origin は始点を表す。
	Origin mmath.Vec3
	// Direction は正規化済みの進行方向を表す。
	Direction mmath.Vec3
}

// DistanceToPoint は点とレイの最短距離を返す。始点より後方の点は始点からの距離を返す。
func (r Ray) DistanceToPoint(point mmath.Vec3) float64 {
	toPoint := point.Subed(r.Origin)
	projected := toPoint.Dot(r.Direction)
	if projected <= 0 {
		return toPoint.Length()
	}
	closest := r.Origin.Added(r.Direction.MuledScalar(projected))
	return closest.Distance(point)
}

// Camera はポインタ座標からワールドレイを生成する視点情報を表す。
// ビュー/プロジェクション行列は外部シーンコラボレータから与えられる。
type Camera struct {
	// View はビュー行列を表す。
	View mgl64.Mat4
	// Projection はプロジェクション行列を表す。
	Projection mgl64.Mat4
	// ViewportX はビューポート左下X座標を表す。
	ViewportX int
	// ViewportY はビューポート左下Y座標を表す。
	ViewportY int
	// ViewportWidth はビューポート幅を表す。
	ViewportWidth int
	// ViewportHeight はビューポート高さを表す。
	ViewportHeight int
}

// PointerRay はスクリーン座標(左上原点)からワールド空間レイを生成する。
func (c Camera) PointerRay(screenX, screenY float64) (Ray, error) {
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return Ray{}, fmt.Errorf("ビューポートサイズが不正です: width=%d height=%d", c.ViewportWidth, c.ViewportHeight)
	}

	// mgl64.UnProject はウィンドウ座標を左下原点で受けるためYを反転する。
	winX := screenX
	winY := float64(c.ViewportHeight) - screenY

	near, err := mgl64.UnProject(
		mgl64.Vec3{winX, winY, 0.0},
		c.View, c.Projection,
		c.ViewportX, c.ViewportY, c.ViewportWidth, c.ViewportHeight,
	)
	if err != nil {
		return Ray{}, fmt.Errorf("ポインタレイの近接点復元に失敗しました: %w", err)
	}
	far, err := mgl64.UnProject(
		mgl64.Vec3{winX, winY, 1.0},
		c.View, c.Projection,
		c.ViewportX, c.ViewportY, c.ViewportWidth, c.ViewportHeight,
	)
	if err != nil {
		return Ray{}, fmt.Errorf("ポインタレイの遠方点復元に失敗しました: %w", err)
	}

	direction := mmath.NewVec3(far.X()-near.X(), far.Y()-near.Y(), far.Z()-near.Z())
	if direction.Length() <= math.SmallestNonzeroFloat64 {
		return Ray{}, fmt.Errorf("ポインタレイの方向が退化しています")
	}
	return Ray{
		Origin:    mmath.NewVec3(near.X(), near.Y(), near.Z()),
		Direction: direction.Normalized(),
	}, nil
}
