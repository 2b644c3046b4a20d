package field

import (
	"fmt"
	"math"
	"math/rand"
)

// PointerNone 指针不在视口内时使用的哨兵坐标，离任何画布都足够远，不会产生排斥
const PointerNone = -9999.0

// Simulator 粒子场模拟器
//
// 所有方法都应在宿主的同一个 goroutine（帧循环所在线程）中调用。
// SetPointer、SetLinkMode、Resize 只是写入字段，下一帧读取时生效。
type Simulator struct {
	cfg       Config
	surface   Surface
	scheduler Scheduler
	rng       *rand.Rand

	particles []Particle

	width, height      float64
	pointerX, pointerY float64
	linkMode           bool

	running bool
	handle  Handle
}

// New 创建模拟器，不分配粒子也不开始调度
//
// rng 为 nil 时使用随机种子。
func New(cfg Config, surface Surface, scheduler Scheduler, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if cfg.ParticleCount < 0 {
		cfg.ParticleCount = 0
	}
	def := DefaultConfig()
	if cfg.PrimaryColor == nil {
		cfg.PrimaryColor = def.PrimaryColor
	}
	if cfg.AccentColor == nil {
		cfg.AccentColor = def.AccentColor
	}
	if cfg.LinkColor == nil {
		cfg.LinkColor = def.LinkColor
	}
	return &Simulator{
		cfg:       cfg,
		surface:   surface,
		scheduler: scheduler,
		rng:       rng,
		pointerX:  PointerNone,
		pointerY:  PointerNone,
	}
}

// Start 分配粒子池、绑定表面并开始帧循环
//
// 已在运行时直接返回 nil，不会重复分配。
// 表面获取失败时返回 ErrRenderSurfaceUnavailable，不开始循环。
func (s *Simulator) Start(width, height int) error {
	if s.running {
		return nil
	}
	if s.surface == nil {
		return ErrRenderSurfaceUnavailable
	}

	w, h := clampDim(width), clampDim(height)
	if err := s.surface.Acquire(int(w), int(h)); err != nil {
		return fmt.Errorf("%w: %v", ErrRenderSurfaceUnavailable, err)
	}
	s.width, s.height = w, h

	s.particles = make([]Particle, s.cfg.ParticleCount)
	for i := range s.particles {
		s.particles[i] = spawnParticle(&s.cfg, s.rng, s.width, s.height)
	}

	s.running = true
	s.handle = s.scheduler.Schedule(s.frame)
	return nil
}

// Resize 更新视口尺寸，不移动也不重新分配粒子
func (s *Simulator) Resize(width, height int) {
	s.width, s.height = clampDim(width), clampDim(height)
	if s.running {
		s.surface.Resize(int(s.width), int(s.height))
	}
}

// SetPointer 设置排斥源坐标
//
// 指针离开视口时传入 PointerNone（或调用 ClearPointer）。
func (s *Simulator) SetPointer(x, y float64) {
	s.pointerX, s.pointerY = x, y
}

// ClearPointer 清除排斥源
func (s *Simulator) ClearPointer() {
	s.pointerX, s.pointerY = PointerNone, PointerNone
}

// SetLinkMode 切换连线模式，下一帧生效，不影响粒子运动
func (s *Simulator) SetLinkMode(enabled bool) {
	s.linkMode = enabled
}

// LinkMode 返回是否开启连线模式
func (s *Simulator) LinkMode() bool {
	return s.linkMode
}

// Stop 取消帧循环并释放表面
//
// 可重复调用，也可在未 Start 时调用。返回后帧回调不会再执行。
func (s *Simulator) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.scheduler.Cancel(s.handle)
	s.handle = 0
	s.surface.Release()
	s.particles = nil
}

// Running 是否正在运行
func (s *Simulator) Running() bool {
	return s.running
}

// Viewport 返回当前视口尺寸
func (s *Simulator) Viewport() (width, height float64) {
	return s.width, s.height
}

// Pointer 返回当前排斥源坐标
func (s *Simulator) Pointer() (x, y float64) {
	return s.pointerX, s.pointerY
}

// Particles 返回粒子池；调用方不应持有该切片跨帧修改
func (s *Simulator) Particles() []Particle {
	return s.particles
}

// frame 单帧：清屏、更新、绘制粒子、绘制连线、调度下一帧
func (s *Simulator) frame() {
	if !s.running {
		return
	}

	s.surface.Clear()
	s.update()
	s.drawParticles()
	if s.linkMode {
		s.drawLinks()
	}

	s.handle = s.scheduler.Schedule(s.frame)
}

// update 推进所有粒子一帧
func (s *Simulator) update() {
	for i := range s.particles {
		s.step(&s.particles[i])
	}
}

// step 推进单个粒子：上漂、回绕、排斥或回归
func (s *Simulator) step(p *Particle) {
	p.Y -= p.Speed

	if p.Y < -s.cfg.Margin {
		p.Y = s.height + s.cfg.Margin
		p.X = s.rng.Float64() * s.width
		p.HomeX = p.X
	}

	dx, dy, pushed := Repel(p.X, p.Y, s.pointerX, s.pointerY, s.cfg.RepulsionRadius, s.cfg.RepulsionStrength)
	if pushed {
		p.X += dx
		p.Y += dy
		return
	}

	if p.X != p.HomeX {
		p.X -= (p.X - p.HomeX) * s.cfg.HomeRelaxation
	}
}

// Repel 计算指针对位于 (x, y) 的粒子施加的推力
//
// 推力方向从指针指向粒子，大小随距离线性衰减：距离 0 处为 strength，
// 到达 radius 时为 0。距离 >= radius 时返回 pushed=false。
// 粒子与指针重合时方向取 +X。
func Repel(x, y, pointerX, pointerY, radius, strength float64) (dx, dy float64, pushed bool) {
	ox := x - pointerX
	oy := y - pointerY
	d := math.Hypot(ox, oy)
	if !(d < radius) {
		return 0, 0, false
	}

	dirX, dirY := 1.0, 0.0
	if d > 0 {
		dirX, dirY = ox/d, oy/d
	}
	force := (radius - d) / radius * strength
	return dirX * force, dirY * force, true
}

// LinkOpacity 两个距离为 d 的粒子之间连线的不透明度
//
// 距离 0 为 maxOpacity，线性衰减到 linkDistance 处为 0。
func LinkOpacity(d, linkDistance, maxOpacity float64) float64 {
	if linkDistance <= 0 || d >= linkDistance {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return (1 - d/linkDistance) * maxOpacity
}

func (s *Simulator) drawParticles() {
	for i := range s.particles {
		p := &s.particles[i]
		s.surface.FillCircle(p.X, p.Y, p.Radius, colorOf(&s.cfg, p))
	}
}

// drawLinks O(n²) 遍历所有无序粒子对
func (s *Simulator) drawLinks() {
	n := len(s.particles)
	for i := 0; i < n; i++ {
		a := &s.particles[i]
		for j := i + 1; j < n; j++ {
			b := &s.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d >= s.cfg.LinkDistance {
				continue
			}
			alpha := LinkOpacity(d, s.cfg.LinkDistance, s.cfg.LinkMaxOpacity)
			s.surface.StrokeLine(a.X, a.Y, b.X, b.Y, s.cfg.LinkWidth, withAlpha(s.cfg.LinkColor, alpha))
		}
	}
}

func clampDim(v int) float64 {
	if v < 0 {
		return 0
	}
	return float64(v)
}
