// 指示: miu200521358
// Package mmath はボーン編集で使うベクトル・クォータニオン演算を提供する。
package mmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ZERO_VEC3 は零ベクトルを表す。
var ZERO_VEC3 = Vec3{}

// UNIT_X_VEC3 はX軸単位ベクトルを表す。
var UNIT_X_VEC3 = Vec3{Vec: r3.Vec{X: 1}}

// UNIT_Y_VEC3 はY軸単位ベクトルを表す。
var UNIT_Y_VEC3 = Vec3{Vec: r3.Vec{Y: 1}}

// UNIT_Z_VEC3 はZ軸単位ベクトルを表す。
var UNIT_Z_VEC3 = Vec3{Vec: r3.Vec{Z: 1}}

// UNIT_Y_NEG_VEC3 はY軸負方向の単位ベクトルを表す。
var UNIT_Y_NEG_VEC3 = Vec3{Vec: r3.Vec{Y: -1}}

// ONE_VEC3 は全成分1のベクトルを表す。スケール初期値に使う。
var ONE_VEC3 = Vec3{Vec: r3.Vec{X: 1, Y: 1, Z: 1}}

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// NewVec3 は成分指定でベクトルを生成する。
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍した結果を返す。
func (v Vec3) MuledScalar(scale float64) Vec3 {
	return Vec3{Vec: r3.Scale(scale, v.Vec)}
}

// Muled は成分ごとの積を返す。
func (v Vec3) Muled(other Vec3) Vec3 {
	return Vec3{Vec: r3.Vec{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}}
}

// Dived は成分ごとの商を返す。ゼロ成分は0のまま返す。
func (v Vec3) Dived(other Vec3) Vec3 {
	result := Vec3{}
	if other.X != 0 {
		result.X = v.X / other.X
	}
	if other.Y != 0 {
		result.Y = v.Y / other.Y
	}
	if other.Z != 0 {
		result.Z = v.Z / other.Z
	}
	return result
}

// Cross は外積を返す。
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{Vec: r3.Cross(v.Vec, other.Vec)}
}

// Dot は内積を返す。
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.Vec, other.Vec)
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Normalized は正規化結果を返す。長さゼロの場合は零ベクトルを返す。
func (v Vec3) Normalized() Vec3 {
	length := r3.Norm(v.Vec)
	if length == 0 {
		return Vec3{}
	}
	return Vec3{Vec: r3.Scale(1.0/length, v.Vec)}
}

// Negated は符号反転結果を返す。
func (v Vec3) Negated() Vec3 {
	return Vec3{Vec: r3.Scale(-1, v.Vec)}
}

// Distance は他ベクトルとの距離を返す。
func (v Vec3) Distance(other Vec3) float64 {
	return r3.Norm(r3.Sub(v.Vec, other.Vec))
}

// NearEquals は全成分が許容誤差内で一致するか判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

// DegToRad は度をラジアンへ変換する。
func DegToRad(degree float64) float64 {
	return degree * math.Pi / 180.0
}

// RadToDeg はラジアンを度へ変換する。
func RadToDeg(radian float64) float64 {
	return radian * 180.0 / math.Pi
}
