// Package field 实现反重力粒子背景的模拟核心
//
// 粒子池大小固定，在视口内持续向上漂移，被指针排斥，未受排斥时横向回归到
// 出生列（HomeX）。开启连线模式时，距离相近的粒子之间绘制半透明连线。
//
// 模拟本身不依赖任何窗口系统：绘制通过 Surface 端口完成，帧调度通过
// Scheduler 端口完成，宿主（ebiten、终端）负责提供这两者以及指针和视口尺寸。
package field

import (
	"image/color"
	"math/rand"

	"github.com/decker502/antigravity/internal/particle"
)

// ColorVariant 粒子颜色类别
type ColorVariant int

const (
	// VariantPrimary 主色（白色）
	VariantPrimary ColorVariant = iota
	// VariantAccent 强调色（红色），约占 20%
	VariantAccent
)

// String 返回颜色类别名称
func (v ColorVariant) String() string {
	switch v {
	case VariantPrimary:
		return "Primary"
	case VariantAccent:
		return "Accent"
	default:
		return "Unknown"
	}
}

// Particle 单个粒子的状态
//
// 纯数据记录，存放在 Simulator 的连续切片中，按索引更新。
// Radius、Speed、Opacity、Variant 在生成时确定，之后不再修改。
type Particle struct {
	X, Y    float64 // 画布像素坐标
	HomeX   float64 // 未受排斥时回归的 X 坐标
	Radius  float64 // 圆点半径
	Speed   float64 // 每帧向上漂移的像素数
	Opacity float64 // 0 ~ 1
	Variant ColorVariant
}

// Range 均匀采样区间 [Min, Max)
type Range struct {
	Min float64
	Max float64
}

// Sample 在区间内均匀采样；Min >= Max 时返回 Min
func (r Range) Sample(rng *rand.Rand) float64 {
	return particle.RandomInRange(rng, r.Min, r.Max)
}

// spawnParticle 生成一个新粒子
//
// 初始 Y 位于视口下方一整屏的范围内，粒子随后逐渐飘入画面。
func spawnParticle(cfg *Config, rng *rand.Rand, width, height float64) Particle {
	x := rng.Float64() * width
	p := Particle{
		X:       x,
		Y:       rng.Float64()*height + height,
		HomeX:   x,
		Radius:  cfg.Radius.Sample(rng),
		Speed:   cfg.Speed.Sample(rng),
		Variant: VariantPrimary,
	}
	if rng.Float64() > 1-cfg.AccentRatio {
		p.Variant = VariantAccent
	}
	p.Opacity = cfg.Opacity.Sample(rng)
	return p
}

// colorOf 返回粒子的绘制颜色（已乘入不透明度）
func colorOf(cfg *Config, p *Particle) color.Color {
	base := cfg.PrimaryColor
	if p.Variant == VariantAccent {
		base = cfg.AccentColor
	}
	return withAlpha(base, p.Opacity)
}

// withAlpha 将不透明度应用到颜色上，返回非预乘的 NRGBA
func withAlpha(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	n.A = uint8(float64(n.A)*alpha + 0.5)
	return n
}
