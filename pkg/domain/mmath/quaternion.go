// 指示: miu200521358
package mmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quaternion は回転クォータニオンを表す。成分は quat.Number の Real=w, Imag=x, Jmag=y, Kmag=z。
type Quaternion struct {
	quat.Number
}

// NewQuaternion は単位クォータニオンを生成する。
func NewQuaternion() Quaternion {
	return Quaternion{Number: quat.Number{Real: 1}}
}

// NewQuaternionByValues は成分指定でクォータニオンを生成する。
func NewQuaternionByValues(x, y, z, w float64) Quaternion {
	return Quaternion{Number: quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}}
}

// NewQuaternionFromRadians はXYZ順の内因性オイラー角(ラジアン)からクォータニオンを生成する。
func NewQuaternionFromRadians(x, y, z float64) Quaternion {
	c1 := math.Cos(x / 2)
	c2 := math.Cos(y / 2)
	c3 := math.Cos(z / 2)
	s1 := math.Sin(x / 2)
	s2 := math.Sin(y / 2)
	s3 := math.Sin(z / 2)
	return Quaternion{Number: quat.Number{
		Real: c1*c2*c3 - s1*s2*s3,
		Imag: s1*c2*c3 + c1*s2*s3,
		Jmag: c1*s2*c3 - s1*c2*s3,
		Kmag: c1*c2*s3 + s1*s2*c3,
	}}
}

// NewQuaternionFromDegrees はXYZ順のオイラー角(度)からクォータニオンを生成する。
func NewQuaternionFromDegrees(x, y, z float64) Quaternion {
	return NewQuaternionFromRadians(DegToRad(x), DegToRad(y), DegToRad(z))
}

// NewQuaternionFromAxisAngle は軸と回転角(ラジアン)からクォータニオンを生成する。
func NewQuaternionFromAxisAngle(axis Vec3, radian float64) Quaternion {
	normalized := axis.Normalized()
	sin := math.Sin(radian / 2)
	return Quaternion{Number: quat.Number{
		Real: math.Cos(radian / 2),
		Imag: normalized.X * sin,
		Jmag: normalized.Y * sin,
		Kmag: normalized.Z * sin,
	}}
}

// NewQuaternionFromAxes は正規直交基底(列ベクトルX/Y/Z)から回転クォータニオンを生成する。
func NewQuaternionFromAxes(axisX, axisY, axisZ Vec3) Quaternion {
	// 回転行列(列=各軸)からの標準的な変換。
	m00, m01, m02 := axisX.X, axisY.X, axisZ.X
	m10, m11, m12 := axisX.Y, axisY.Y, axisZ.Y
	m20, m21, m22 := axisX.Z, axisY.Z, axisZ.Z

	trace := m00 + m11 + m22
	var x, y, z, w float64
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1.0)
		w = 0.25 / s
		x = (m21 - m12) * s
		y = (m02 - m20) * s
		z = (m10 - m01) * s
	case m00 > m11 && m00 > m22:
		s := 2.0 * math.Sqrt(1.0+m00-m11-m22)
		w = (m21 - m12) / s
		x = 0.25 * s
		y = (m01 + m10) / s
		z = (m02 + m20) / s
	case m11 > m22:
		s := 2.0 * math.Sqrt(1.0+m11-m00-m22)
		w = (m02 - m20) / s
		x = (m01 + m10) / s
		y = 0.25 * s
		z = (m12 + m21) / s
	default:
		s := 2.0 * math.Sqrt(1.0+m22-m00-m11)
		w = (m10 - m01) / s
		x = (m02 + m20) / s
		y = (m12 + m21) / s
		z = 0.25 * s
	}
	return NewQuaternionByValues(x, y, z, w).Normalized()
}

// X はX成分を返す。
func (q Quaternion) X() float64 { return q.Imag }

// Y はY成分を返す。
func (q Quaternion) Y() float64 { return q.Jmag }

// Z はZ成分を返す。
func (q Quaternion) Z() float64 { return q.Kmag }

// W はW成分を返す。
func (q Quaternion) W() float64 { return q.Real }

// Muled は q×other の合成回転を返す。
func (q Quaternion) Muled(other Quaternion) Quaternion {
	return Quaternion{Number: quat.Mul(q.Number, other.Number)}
}

// Conjugated は共役クォータニオンを返す。
func (q Quaternion) Conjugated() Quaternion {
	return Quaternion{Number: quat.Conj(q.Number)}
}

// Inverted は逆回転クォータニオンを返す。ノルムゼロの場合は単位クォータニオンを返す。
func (q Quaternion) Inverted() Quaternion {
	normSq := q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag
	if normSq == 0 {
		return NewQuaternion()
	}
	conj := quat.Conj(q.Number)
	return Quaternion{Number: quat.Number{
		Real: conj.Real / normSq,
		Imag: conj.Imag / normSq,
		Jmag: conj.Jmag / normSq,
		Kmag: conj.Kmag / normSq,
	}}
}

// Normalized は正規化結果を返す。ノルムゼロの場合は単位クォータニオンを返す。
func (q Quaternion) Normalized() Quaternion {
	norm := quat.Abs(q.Number)
	if norm == 0 {
		return NewQuaternion()
	}
	return Quaternion{Number: quat.Number{
		Real: q.Real / norm,
		Imag: q.Imag / norm,
		Jmag: q.Jmag / norm,
		Kmag: q.Kmag / norm,
	}}
}

// Dot は内積を返す。
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.Real*other.Real + q.Imag*other.Imag + q.Jmag*other.Jmag + q.Kmag*other.Kmag
}

// MulVec3 はベクトルへ回転を適用した結果を返す。
func (q Quaternion) MulVec3(v Vec3) Vec3 {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rotated := quat.Mul(quat.Mul(q.Number, p), quat.Conj(q.Number))
	return NewVec3(rotated.Imag, rotated.Jmag, rotated.Kmag)
}

// ToRadians はXYZ順の内因性オイラー角(ラジアン)へ分解する。
func (q Quaternion) ToRadians() (x, y, z float64) {
	n := q.Normalized()
	qw, qx, qy, qz := n.Real, n.Imag, n.Jmag, n.Kmag

	// 回転行列の必要成分のみ展開する。
	m00 := 1 - 2*(qy*qy+qz*qz)
	m01 := 2 * (qx*qy - qz*qw)
	m02 := 2 * (qx*qz + qy*qw)
	m11 := 1 - 2*(qx*qx+qz*qz)
	m12 := 2 * (qy*qz - qx*qw)
	m21 := 2 * (qy*qz + qx*qw)
	m22 := 1 - 2*(qx*qx+qy*qy)

	y = math.Asin(clamp(m02, -1, 1))
	if math.Abs(m02) < 0.9999999 {
		x = math.Atan2(-m12, m22)
		z = math.Atan2(-m01, m00)
	} else {
		x = math.Atan2(m21, m11)
		z = 0
	}
	return x, y, z
}

// ToDegrees はXYZ順のオイラー角(度)へ分解する。
func (q Quaternion) ToDegrees() (x, y, z float64) {
	rx, ry, rz := q.ToRadians()
	return RadToDeg(rx), RadToDeg(ry), RadToDeg(rz)
}

// NearEquals は回転として許容誤差内で一致するか判定する。符号反転した同値回転も一致扱いとする。
func (q Quaternion) NearEquals(other Quaternion, epsilon float64) bool {
	if math.Abs(q.Real-other.Real) <= epsilon &&
		math.Abs(q.Imag-other.Imag) <= epsilon &&
		math.Abs(q.Jmag-other.Jmag) <= epsilon &&
		math.Abs(q.Kmag-other.Kmag) <= epsilon {
		return true
	}
	return math.Abs(q.Real+other.Real) <= epsilon &&
		math.Abs(q.Imag+other.Imag) <= epsilon &&
		math.Abs(q.Jmag+other.Jmag) <= epsilon &&
		math.Abs(q.Kmag+other.Kmag) <= epsilon
}

// IsNearIdentity は回転角が角度epsilon相当内で単位回転か判定する。
func (q Quaternion) IsNearIdentity(epsilon float64) bool {
	return 1.0-math.Abs(q.Normalized().Real) <= epsilon
}

// clamp はmin-maxで値をクランプする。
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
