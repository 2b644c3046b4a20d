package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerPosition 返回当前指针位置
// 优先返回第一个触点；没有触摸时返回鼠标位置，touching 为 false
func PointerPosition() (x, y int, touching bool) {
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return x, y, true
	}
	x, y = ebiten.CursorPosition()
	return x, y, false
}

// IsMultiTouchJustStarted 本帧新增触点后屏幕上恰好有两个触点
// 移动端没有键盘，用双指轻触代替 L 键切换连线模式
func IsMultiTouchJustStarted() bool {
	if len(inpututil.AppendJustPressedTouchIDs(nil)) == 0 {
		return false
	}
	return len(ebiten.AppendTouchIDs(nil)) == 2
}
