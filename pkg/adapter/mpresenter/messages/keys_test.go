// 指示: miu200521358
package messages

import "testing"

func TestEditorMessageKeysAreDefined(t *testing.T) {
	keys := []string{
		HelpUsageTitle,
		HelpUsage,
		LabelFile,
		LabelBvhPath,
		LabelBvhPathTip,
		LabelMirrorMode,
		LabelMirrorModeTip,
		LabelUndo,
		LabelRedo,
		LabelCorrection,
		LabelCorrectionTip,
		MessageLoadFailed,
		MessageStoreFailed,
		MessageCorrectionFailed,
		MessageInputRequired,
		MessageSkeletonMissing,
		MessageNothingToUndo,
		MessageNothingToRedo,
		MessageMirrorNoTarget,
		MessageCorrectionIsEmpty,
	}

	seen := map[string]struct{}{}
	for _, key := range keys {
		if key == "" {
			t.Fatalf("key should not be empty")
		}
		if _, exists := seen[key]; exists {
			t.Fatalf("key should be unique: %s", key)
		}
		seen[key] = struct{}{}
	}
}
