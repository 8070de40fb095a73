// 指示: miu200521358
package model

const (
	// ImportWarningMultipleRoots は複数ROOT宣言の警告。最初のROOTのみがルート扱いとなる。
	ImportWarningMultipleRoots = "ImportWarningMultipleRoots"
	// ImportWarningNoFrames はフレーム数0の警告。空クリップとして取り込まれる。
	ImportWarningNoFrames = "ImportWarningNoFrames"
	// ImportWarningZeroFrameTime はフレーム時間0の警告。全キーフレームの時刻が0になる。
	ImportWarningZeroFrameTime = "ImportWarningZeroFrameTime"
)
