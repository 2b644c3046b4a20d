package field

import (
	"errors"
	"image/color"
)

// ErrRenderSurfaceUnavailable 绘制表面无法获取
//
// 由 Start 同步返回，不会自动重试；调用方需要重建表面后再次调用 Start。
var ErrRenderSurfaceUnavailable = errors.New("render surface unavailable")

// Surface 模拟器的绘制目标
//
// 坐标均为画布像素空间。颜色已包含不透明度（非预乘 alpha）。
type Surface interface {
	// Acquire 绑定并按视口尺寸分配表面，失败时返回错误
	Acquire(width, height int) error
	// Resize 调整表面尺寸（同时也是 Clear 的清除范围）
	Resize(width, height int)
	// Release 释放表面绑定
	Release()

	Clear()
	FillCircle(x, y, radius float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

// FrameFunc 每帧回调
type FrameFunc func()

// Handle 已调度帧的句柄，0 为无效句柄
type Handle uint64

// Scheduler 帧调度端口，对应宿主的"请求下一帧"原语
//
// Cancel 之后对应的回调保证不会再被执行。
type Scheduler interface {
	Schedule(fn FrameFunc) Handle
	Cancel(h Handle)
}

// StepScheduler 手动驱动的调度器
//
// 宿主在每次显示刷新时调用 Step；测试中直接逐帧推进。
// 同一时刻最多只有一个待执行回调，与 requestAnimationFrame 的用法一致。
// 非并发安全：所有调用都应在同一个 goroutine 中进行。
type StepScheduler struct {
	next    Handle
	pending Handle
	fn      FrameFunc
	frames  uint64
}

// NewStepScheduler 创建手动调度器
func NewStepScheduler() *StepScheduler {
	return &StepScheduler{}
}

// Schedule 登记下一帧回调，替换任何尚未执行的回调
func (s *StepScheduler) Schedule(fn FrameFunc) Handle {
	s.next++
	s.pending = s.next
	s.fn = fn
	return s.pending
}

// Cancel 取消指定句柄；句柄已执行或已被替换时无操作
func (s *StepScheduler) Cancel(h Handle) {
	if h != 0 && h == s.pending {
		s.pending = 0
		s.fn = nil
	}
}

// Step 执行一次待处理回调，返回是否执行了回调
func (s *StepScheduler) Step() bool {
	if s.fn == nil {
		return false
	}
	fn := s.fn
	s.pending = 0
	s.fn = nil
	s.frames++
	fn()
	return true
}

// Pending 是否有待执行的回调
func (s *StepScheduler) Pending() bool {
	return s.fn != nil
}

// Frames 返回已执行的帧数
func (s *StepScheduler) Frames() uint64 {
	return s.frames
}
