package field

import (
	"errors"
	"image/color"
	"math/rand"
)

// recordingSurface 记录绘制调用的测试表面
type recordingSurface struct {
	acquireErr error

	acquired bool
	width    int
	height   int
	acquires int
	releases int

	clears  int
	circles []circleCall
	lines   []lineCall
}

type circleCall struct {
	x, y, r float64
	c       color.NRGBA
}

type lineCall struct {
	x0, y0, x1, y1, w float64
	c                 color.NRGBA
}

func (s *recordingSurface) Acquire(width, height int) error {
	if s.acquireErr != nil {
		return s.acquireErr
	}
	s.acquires++
	s.acquired = true
	s.width, s.height = width, height
	return nil
}

func (s *recordingSurface) Resize(width, height int) {
	s.width, s.height = width, height
}

func (s *recordingSurface) Release() {
	s.releases++
	s.acquired = false
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
	s.lines = s.lines[:0]
}

func (s *recordingSurface) FillCircle(x, y, r float64, c color.Color) {
	s.circles = append(s.circles, circleCall{x, y, r, color.NRGBAModel.Convert(c).(color.NRGBA)})
}

func (s *recordingSurface) StrokeLine(x0, y0, x1, y1, w float64, c color.Color) {
	s.lines = append(s.lines, lineCall{x0, y0, x1, y1, w, color.NRGBAModel.Convert(c).(color.NRGBA)})
}

var errNoContext = errors.New("no 2d context")

// newTestSimulator 创建带记录表面和手动调度器的模拟器
func newTestSimulator(cfg Config) (*Simulator, *recordingSurface, *StepScheduler) {
	surface := &recordingSurface{}
	sched := NewStepScheduler()
	sim := New(cfg, surface, sched, rand.New(rand.NewSource(42)))
	return sim, surface, sched
}
