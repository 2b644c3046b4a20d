// Package render 提供粒子场的绘制表面实现
//
// EbitenSurface 绘制到离屏 ebiten.Image，由宿主在 Draw 中贴到屏幕。
// 终端表面见子包 terminal。
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface 基于离屏图像的绘制表面
type EbitenSurface struct {
	image     *ebiten.Image
	width     int
	height    int
	antialias bool
}

// NewEbitenSurface 创建 ebiten 绘制表面
func NewEbitenSurface(antialias bool) *EbitenSurface {
	return &EbitenSurface{antialias: antialias}
}

// Acquire 按视口尺寸分配离屏图像
//
// ebiten.NewImage 在尺寸非法或图形驱动不可用时会 panic，这里转换为错误返回。
func (s *EbitenSurface) Acquire(width, height int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.image = nil
			err = fmt.Errorf("failed to allocate %dx%d offscreen image: %v", width, height, r)
		}
	}()

	s.allocate(width, height)
	return nil
}

// Resize 重新分配离屏图像；未 Acquire 时只记录尺寸
func (s *EbitenSurface) Resize(width, height int) {
	if s.image == nil {
		s.width, s.height = width, height
		return
	}
	if width == s.width && height == s.height {
		return
	}
	s.image.Deallocate()
	s.allocate(width, height)
}

// Release 释放离屏图像
func (s *EbitenSurface) Release() {
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
}

// allocate 分配图像，零面积视口使用 1x1 图像
func (s *EbitenSurface) allocate(width, height int) {
	s.width, s.height = width, height
	s.image = ebiten.NewImage(max(width, 1), max(height, 1))
}

// Clear 清空整个离屏图像
func (s *EbitenSurface) Clear() {
	if s.image != nil {
		s.image.Clear()
	}
}

// FillCircle 绘制实心圆点
func (s *EbitenSurface) FillCircle(x, y, radius float64, c color.Color) {
	if s.image == nil {
		return
	}
	vector.DrawFilledCircle(s.image, float32(x), float32(y), float32(radius), c, s.antialias)
}

// StrokeLine 绘制线段
func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	if s.image == nil {
		return
	}
	vector.StrokeLine(s.image, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, s.antialias)
}

// Image 返回离屏图像，未绑定时为 nil
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.image
}

// Size 返回当前视口尺寸
func (s *EbitenSurface) Size() (width, height int) {
	return s.width, s.height
}
