// Package terminal 提供终端绘制表面
//
// 与 render 包分开，终端宿主不依赖 ebiten 及其图形栈。
package terminal

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// 终端字符格对应的像素尺寸
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// linkBoost 连线在终端里的亮度放大倍数
const linkBoost = 4.0

// TcellSurface 终端绘制表面
//
// 模拟器仍在像素空间中运行，每个字符格覆盖 cellW×cellH 像素。
// 圆点按半径选择字形，连线用暗色 '.' 绘制，且不会覆盖圆点所在的格子。
type TcellSurface struct {
	screen tcell.Screen
	bg     tcell.Color

	cellW, cellH float64
	cols, rows   int

	// occupied 本帧已绘制圆点的格子
	occupied []bool
	bound    bool
}

// NewTcellSurface 创建终端绘制表面
func NewTcellSurface(screen tcell.Screen, cellW, cellH float64) *TcellSurface {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	return &TcellSurface{
		screen: screen,
		bg:     tcell.ColorBlack,
		cellW:  cellW,
		cellH:  cellH,
	}
}

// Acquire 绑定终端屏幕
func (s *TcellSurface) Acquire(width, height int) error {
	if s.screen == nil {
		return fmt.Errorf("terminal screen not initialized")
	}
	s.bound = true
	s.Resize(width, height)
	return nil
}

// Resize 按像素尺寸重新计算字符格网格
func (s *TcellSurface) Resize(width, height int) {
	s.cols = int(math.Ceil(float64(max(width, 0)) / s.cellW))
	s.rows = int(math.Ceil(float64(max(height, 0)) / s.cellH))
	s.occupied = make([]bool, s.cols*s.rows)
}

// Release 解除绑定，不关闭屏幕（屏幕由宿主持有）
func (s *TcellSurface) Release() {
	s.bound = false
	s.occupied = nil
}

// Clear 清空屏幕和格子占用
func (s *TcellSurface) Clear() {
	if !s.bound {
		return
	}
	s.screen.Clear()
	for i := range s.occupied {
		s.occupied[i] = false
	}
}

// FillCircle 在圆心所在的格子绘制一个圆点字形
func (s *TcellSurface) FillCircle(x, y, radius float64, c color.Color) {
	col, row, ok := s.cell(x, y)
	if !ok {
		return
	}
	s.screen.SetContent(col, row, dotRune(radius), nil, s.style(c, 1))
	s.occupied[row*s.cols+col] = true
}

// StrokeLine 用 Bresenham 在格子间画线
func (s *TcellSurface) StrokeLine(x0, y0, x1, y1, _ float64, c color.Color) {
	if !s.bound {
		return
	}
	c0, r0 := int(math.Floor(x0/s.cellW)), int(math.Floor(y0/s.cellH))
	c1, r1 := int(math.Floor(x1/s.cellW)), int(math.Floor(y1/s.cellH))
	style := s.style(c, linkBoost)

	dc := absInt(c1 - c0)
	dr := -absInt(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr

	for {
		if s.inBounds(c0, r0) && !s.occupied[r0*s.cols+c0] {
			s.screen.SetContent(c0, r0, '.', nil, style)
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// PixelSize 返回终端网格对应的像素尺寸，用于 Start/Resize
func (s *TcellSurface) PixelSize(cols, rows int) (width, height int) {
	return int(float64(cols) * s.cellW), int(float64(rows) * s.cellH)
}

// CellCenter 返回字符格中心的像素坐标，用于把鼠标位置转换为指针坐标
func (s *TcellSurface) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

func (s *TcellSurface) cell(x, y float64) (col, row int, ok bool) {
	if !s.bound || math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0, false
	}
	col, row = int(math.Floor(x/s.cellW)), int(math.Floor(y/s.cellH))
	return col, row, s.inBounds(col, row)
}

func (s *TcellSurface) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < s.cols && row < s.rows
}

// style 将不透明度折算进前景色（终端没有 alpha 通道）
func (s *TcellSurface) style(c color.Color, boost float64) tcell.Style {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	a := math.Min(float64(n.A)/255*boost, 1)
	fg := tcell.NewRGBColor(
		int32(float64(n.R)*a),
		int32(float64(n.G)*a),
		int32(float64(n.B)*a),
	)
	return tcell.StyleDefault.Foreground(fg).Background(s.bg)
}

// dotRune 按半径选择圆点字形
func dotRune(radius float64) rune {
	switch {
	case radius < 1:
		return '·'
	case radius < 2:
		return '•'
	default:
		return '●'
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
