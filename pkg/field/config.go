package field

import "image/color"

// 默认调参常量，保持原始视觉效果的取值
const (
	DefaultParticleCount     = 120
	DefaultMargin            = 10.0
	DefaultRepulsionRadius   = 150.0
	DefaultRepulsionStrength = 2.0
	DefaultHomeRelaxation    = 0.02
	DefaultLinkDistance      = 120.0
	DefaultLinkMaxOpacity    = 0.2
	DefaultLinkWidth         = 0.5
	DefaultAccentRatio       = 0.2
)

// Config 粒子场的全部调参项
type Config struct {
	ParticleCount int

	// Margin 顶部/底部的回绕边距（像素）
	Margin float64

	// RepulsionRadius 指针排斥半径；RepulsionStrength 为距离 0 处每帧的推力（像素）
	RepulsionRadius   float64
	RepulsionStrength float64

	// HomeRelaxation 每帧向 HomeX 回归的偏移比例
	HomeRelaxation float64

	LinkDistance   float64
	LinkMaxOpacity float64
	LinkWidth      float64

	AccentRatio float64

	Radius  Range
	Speed   Range
	Opacity Range

	PrimaryColor color.Color
	AccentColor  color.Color
	LinkColor    color.Color
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		ParticleCount:     DefaultParticleCount,
		Margin:            DefaultMargin,
		RepulsionRadius:   DefaultRepulsionRadius,
		RepulsionStrength: DefaultRepulsionStrength,
		HomeRelaxation:    DefaultHomeRelaxation,
		LinkDistance:      DefaultLinkDistance,
		LinkMaxOpacity:    DefaultLinkMaxOpacity,
		LinkWidth:         DefaultLinkWidth,
		AccentRatio:       DefaultAccentRatio,
		Radius:            Range{Min: 0.5, Max: 2.5},
		Speed:             Range{Min: 0.2, Max: 0.7},
		Opacity:           Range{Min: 0.3, Max: 0.8},
		PrimaryColor:      color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		AccentColor:       color.RGBA{R: 0xe6, G: 0x39, B: 0x46, A: 0xff},
		LinkColor:         color.RGBA{R: 0xe6, G: 0x39, B: 0x46, A: 0xff},
	}
}
