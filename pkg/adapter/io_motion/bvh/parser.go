// 指示: miu200521358
package bvh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/miu200521358/mu_bvh_retarget/pkg/adapter/io_common"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
)

// bvhChannel はジョイント1チャンネルの種別を表す。
type bvhChannel int

const (
	channelXPosition bvhChannel = iota
	channelYPosition
	channelZPosition
	channelXRotation
	channelYRotation
	channelZRotation
)

// bvhJoint は解析中のジョイント情報(ボーン+宣言チャンネル)を表す。
type bvhJoint struct {
	bone     *model.Bone
	channels []bvhChannel
}

// bvhParser はBVHテキストの行単位パーサを表す。
type bvhParser struct {
	lines    []string
	pos      int
	warnings []string
}

// newBvhParser は空行を除いた行列でパーサを生成する。
func newBvhParser(text string) *bvhParser {
	rawLines := strings.Split(text, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	return &bvhParser{lines: lines}
}

// next は次の行を消費して返す。
func (p *bvhParser) next() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	line := p.lines[p.pos]
	p.pos++
	return line, true
}

// peek は次の行を消費せず返す。
func (p *bvhParser) peek() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	return p.lines[p.pos], true
}

// hierarchyError はHIERARCHYブロックの構造不正エラーを生成する。
func hierarchyError(format string, args ...any) error {
	return io_common.NewIoParseFailed("BVH階層の構造が不正です: "+fmt.Sprintf(format, args...), nil)
}

// motionError はMOTIONブロックの書式不正エラーを生成する。
func motionError(format string, args ...any) error {
	return io_common.NewIoParseFailed("BVHモーションデータが不正です: "+fmt.Sprintf(format, args...), nil)
}

// parseHierarchy はHIERARCHYブロックを解析し、宣言順のジョイント一覧を返す。
func (p *bvhParser) parseHierarchy() ([]*bvhJoint, error) {
	header, ok := p.next()
	if !ok || !strings.EqualFold(header, "HIERARCHY") {
		return nil, hierarchyError("HIERARCHYブロックがありません")
	}

	joints := make([]*bvhJoint, 0)
	rootCount := 0
	for {
		line, ok := p.peek()
		if !ok {
			break
		}
		if !hasKeywordPrefix(line, "ROOT") {
			break
		}
		p.pos++
		name := strings.TrimSpace(line[len("ROOT"):])
		if name == "" {
			return nil, hierarchyError("ROOT宣言にジョイント名がありません")
		}
		if err := p.parseJointBody(name, -1, &joints); err != nil {
			return nil, err
		}
		rootCount++
	}
	if len(joints) == 0 {
		return nil, hierarchyError("ROOTジョイントがありません")
	}
	if rootCount > 1 {
		p.warn(model.ImportWarningMultipleRoots)
	}
	return joints, nil
}

// warn は取り込み続行可能な警告IDを記録する。同一IDは1回だけ記録する。
func (p *bvhParser) warn(id string) {
	for _, existing := range p.warnings {
		if existing == id {
			return
		}
	}
	p.warnings = append(p.warnings, id)
}

// parseJointBody は1ジョイントのブロック( { OFFSET CHANNELS 子... } )を解析する。
func (p *bvhParser) parseJointBody(name string, parentIndex int, joints *[]*bvhJoint) error {
	open, ok := p.next()
	if !ok || open != "{" {
		return hierarchyError("ジョイント %s の開きブレースがありません", name)
	}

	bone := model.NewBone(name)
	bone.ParentIndex = parentIndex
	joint := &bvhJoint{bone: bone}
	*joints = append(*joints, joint)
	// bone のindexは BoneCollection 登録時に確定するが、親子リンクは宣言順indexで先行解決する。
	jointIndex := len(*joints) - 1

	offsetSeen := false
	for {
		line, ok := p.next()
		if !ok {
			return hierarchyError("ジョイント %s のブロックが閉じていません", name)
		}
		switch {
		case line == "}":
			if !offsetSeen {
				return hierarchyError("ジョイント %s にOFFSET宣言がありません", name)
			}
			return nil
		case hasKeywordPrefix(line, "OFFSET"):
			offset, err := parseOffsetLine(name, line)
			if err != nil {
				return err
			}
			bone.Position = offset
			offsetSeen = true
		case hasKeywordPrefix(line, "CHANNELS"):
			channels, err := parseChannelsLine(name, line)
			if err != nil {
				return err
			}
			joint.channels = channels
		case hasKeywordPrefix(line, "JOINT"):
			childName := strings.TrimSpace(line[len("JOINT"):])
			if childName == "" {
				return hierarchyError("JOINT宣言にジョイント名がありません")
			}
			if err := p.parseJointBody(childName, jointIndex, joints); err != nil {
				return err
			}
		case strings.EqualFold(line, "End Site"):
			if err := p.parseEndSite(name, jointIndex, joints); err != nil {
				return err
			}
		default:
			return hierarchyError("ジョイント %s 内に不明な宣言があります: %s", name, line)
		}
	}
}

// parseEndSite はEnd Siteブロックを補助ボーンとして解析する。
func (p *bvhParser) parseEndSite(parentName string, parentIndex int, joints *[]*bvhJoint) error {
	open, ok := p.next()
	if !ok || open != "{" {
		return hierarchyError("End Site(%s)の開きブレースがありません", parentName)
	}
	offsetLine, ok := p.next()
	if !ok || !hasKeywordPrefix(offsetLine, "OFFSET") {
		return hierarchyError("End Site(%s)にOFFSET宣言がありません", parentName)
	}
	offset, err := parseOffsetLine(parentName, offsetLine)
	if err != nil {
		return err
	}
	closeLine, ok := p.next()
	if !ok || closeLine != "}" {
		return hierarchyError("End Site(%s)のブロックが閉じていません", parentName)
	}

	bone := model.NewBone(parentName + "_End")
	bone.ParentIndex = parentIndex
	bone.IsEndSite = true
	bone.Position = offset
	*joints = append(*joints, &bvhJoint{bone: bone})
	return nil
}

// parseOffsetLine はOFFSET行の3成分を解析する。
func parseOffsetLine(jointName string, line string) (mmath.Vec3, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return mmath.ZERO_VEC3, hierarchyError("ジョイント %s のOFFSET成分数が不正です: %s", jointName, line)
	}
	values := make([]float64, 3)
	for i, field := range fields[1:] {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return mmath.ZERO_VEC3, hierarchyError("ジョイント %s のOFFSET値が数値ではありません: %s", jointName, field)
		}
		values[i] = value
	}
	return mmath.NewVec3(values[0], values[1], values[2]), nil
}

// parseChannelsLine はCHANNELS行を解析し、宣言数と実数の一致を検証する。
func parseChannelsLine(jointName string, line string) ([]bvhChannel, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, hierarchyError("ジョイント %s のCHANNELS宣言が不正です: %s", jointName, line)
	}
	declared, err := strconv.Atoi(fields[1])
	if err != nil || declared < 0 {
		return nil, hierarchyError("ジョイント %s のCHANNELS数が数値ではありません: %s", jointName, fields[1])
	}
	names := fields[2:]
	if len(names) != declared {
		return nil, hierarchyError("ジョイント %s のCHANNELS数が一致しません: declared=%d actual=%d", jointName, declared, len(names))
	}
	channels := make([]bvhChannel, 0, declared)
	for _, name := range names {
		channel, ok := parseChannelName(name)
		if !ok {
			return nil, hierarchyError("ジョイント %s に未対応チャンネルがあります: %s", jointName, name)
		}
		channels = append(channels, channel)
	}
	return channels, nil
}

// parseChannelName はチャンネル名を種別へ変換する。
func parseChannelName(name string) (bvhChannel, bool) {
	switch strings.ToLower(name) {
	case "xposition":
		return channelXPosition, true
	case "yposition":
		return channelYPosition, true
	case "zposition":
		return channelZPosition, true
	case "xrotation":
		return channelXRotation, true
	case "yrotation":
		return channelYRotation, true
	case "zrotation":
		return channelZRotation, true
	default:
		return 0, false
	}
}

// parseMotion はMOTIONブロックを解析し、モーションクリップを構築する。
func (p *bvhParser) parseMotion(clipName string, joints []*bvhJoint) (*model.MotionClip, error) {
	header, ok := p.next()
	if !ok || !strings.EqualFold(header, "MOTION") {
		return nil, motionError("MOTIONブロックがありません")
	}

	frameCount, err := p.parseLabeledInt("Frames:")
	if err != nil {
		return nil, err
	}
	frameTime, err := p.parseLabeledFloat("Frame Time:")
	if err != nil {
		return nil, err
	}
	if frameCount == 0 {
		p.warn(model.ImportWarningNoFrames)
	}
	if frameTime == 0 {
		p.warn(model.ImportWarningZeroFrameTime)
	}

	totalChannels := 0
	for _, joint := range joints {
		totalChannels += len(joint.channels)
	}

	tracks := make([]*model.BoneKeyframeTrack, 0, len(joints))
	trackByJoint := map[int]*model.BoneKeyframeTrack{}
	for jointIndex, joint := range joints {
		if len(joint.channels) == 0 {
			continue
		}
		track := &model.BoneKeyframeTrack{
			BoneName:  joint.bone.Name(),
			BoneIndex: jointIndex,
			Keyframes: make([]model.BoneKeyframe, 0, frameCount),
		}
		tracks = append(tracks, track)
		trackByJoint[jointIndex] = track
	}

	for frame := 0; frame < frameCount; frame++ {
		line, ok := p.next()
		if !ok {
			return nil, motionError("モーションデータが途中で終了しています: frame=%d/%d", frame, frameCount)
		}
		fields := strings.Fields(line)
		if len(fields) != totalChannels {
			return nil, motionError("チャンネル数が一致しません: frame=%d expected=%d actual=%d", frame, totalChannels, len(fields))
		}

		cursor := 0
		time := float64(frame) * frameTime
		for jointIndex, joint := range joints {
			if len(joint.channels) == 0 {
				continue
			}
			keyframe, err := buildKeyframe(joint, time, fields[cursor:cursor+len(joint.channels)])
			if err != nil {
				return nil, err
			}
			cursor += len(joint.channels)
			trackByJoint[jointIndex].Keyframes = append(trackByJoint[jointIndex].Keyframes, keyframe)
		}
	}

	return &model.MotionClip{
		Name:       clipName,
		FrameCount: frameCount,
		FrameTime:  frameTime,
		Tracks:     tracks,
	}, nil
}

// buildKeyframe は1ジョイント1フレーム分のチャンネル値からキーフレームを構築する。
// 移動チャンネルはOFFSETへの加算、回転チャンネルは宣言順の軸回転合成として扱う。
func buildKeyframe(joint *bvhJoint, time float64, fields []string) (model.BoneKeyframe, error) {
	position := joint.bone.Position
	rotation := mmath.NewQuaternion()
	for i, channel := range joint.channels {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return model.BoneKeyframe{}, motionError("チャンネル値が数値ではありません: joint=%s value=%s", joint.bone.Name(), fields[i])
		}
		switch channel {
		case channelXPosition:
			position.X += value
		case channelYPosition:
			position.Y += value
		case channelZPosition:
			position.Z += value
		case channelXRotation:
			rotation = rotation.Muled(mmath.NewQuaternionFromAxisAngle(mmath.UNIT_X_VEC3, mmath.DegToRad(value)))
		case channelYRotation:
			rotation = rotation.Muled(mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Y_VEC3, mmath.DegToRad(value)))
		case channelZRotation:
			rotation = rotation.Muled(mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Z_VEC3, mmath.DegToRad(value)))
		}
	}
	return model.BoneKeyframe{
		Time:     time,
		Position: position,
		Rotation: rotation,
		Scale:    mmath.ONE_VEC3,
	}, nil
}

// parseLabeledInt は "ラベル 整数" 形式の行を解析する。
func (p *bvhParser) parseLabeledInt(label string) (int, error) {
	line, ok := p.next()
	if !ok || !hasLabelPrefix(line, label) {
		return 0, motionError("%s 宣言がありません", label)
	}
	raw := strings.TrimSpace(line[len(label):])
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, motionError("%s の値が不正です: %s", label, raw)
	}
	return value, nil
}

// parseLabeledFloat は "ラベル 実数" 形式の行を解析する。
func (p *bvhParser) parseLabeledFloat(label string) (float64, error) {
	line, ok := p.next()
	if !ok || !hasLabelPrefix(line, label) {
		return 0, motionError("%s 宣言がありません", label)
	}
	raw := strings.TrimSpace(line[len(label):])
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0, motionError("%s の値が不正です: %s", label, raw)
	}
	return value, nil
}

// hasKeywordPrefix は行が大文字小文字無視でキーワード+空白から始まるか判定する。
func hasKeywordPrefix(line string, keyword string) bool {
	if len(line) <= len(keyword) {
		return false
	}
	if !strings.EqualFold(line[:len(keyword)], keyword) {
		return false
	}
	return line[len(keyword)] == ' ' || line[len(keyword)] == '\t'
}

// hasLabelPrefix は行が大文字小文字無視でラベルから始まるか判定する。
func hasLabelPrefix(line string, label string) bool {
	return len(line) > len(label) && strings.EqualFold(line[:len(label)], label)
}
