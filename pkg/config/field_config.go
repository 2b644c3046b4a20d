package config

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/decker502/antigravity/internal/particle"
	"github.com/decker502/antigravity/pkg/field"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// DefaultFieldConfigPath 内嵌默认配置的路径
const DefaultFieldConfigPath = "data/field.yaml"

// FieldConfig 粒子场 YAML 配置
//
// 配置文件位置: data/field.yaml
//
// 范围类字段使用粒子数值记法，例如 "[0.5 2.5]" 或固定值 "1.5"。
type FieldConfig struct {
	// ParticleCount 粒子池大小
	ParticleCount int `yaml:"particleCount" json:"particleCount"`

	// Margin 回绕边距（像素）
	Margin float64 `yaml:"margin" json:"margin"`

	// RepulsionRadius 指针排斥半径
	RepulsionRadius float64 `yaml:"repulsionRadius" json:"repulsionRadius"`

	// RepulsionStrength 距离 0 处每帧的推力
	RepulsionStrength float64 `yaml:"repulsionStrength" json:"repulsionStrength"`

	// HomeRelaxation 每帧回归比例
	HomeRelaxation float64 `yaml:"homeRelaxation" json:"homeRelaxation"`

	// AccentRatio 强调色粒子比例
	AccentRatio float64 `yaml:"accentRatio" json:"accentRatio"`

	Radius  string `yaml:"radius" json:"radius"`
	Speed   string `yaml:"speed" json:"speed"`
	Opacity string `yaml:"opacity" json:"opacity"`

	Links  LinkConfig   `yaml:"links" json:"links"`
	Colors ColorConfig  `yaml:"colors" json:"colors"`
	Window WindowConfig `yaml:"window" json:"window"`
}

// LinkConfig 连线模式配置
type LinkConfig struct {
	Distance   float64 `yaml:"distance" json:"distance"`
	MaxOpacity float64 `yaml:"maxOpacity" json:"maxOpacity"`
	Width      float64 `yaml:"width" json:"width"`
}

// ColorConfig 颜色配置（十六进制，如 "#E63946"）
type ColorConfig struct {
	Primary    string `yaml:"primary" json:"primary"`
	Accent     string `yaml:"accent" json:"accent"`
	Link       string `yaml:"link" json:"link"`
	Background string `yaml:"background" json:"background"`
}

// WindowConfig 桌面窗口初始配置
type WindowConfig struct {
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Title  string `yaml:"title" json:"title"`
}

// LoadFieldConfig 从磁盘加载粒子场配置
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *FieldConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadFieldConfig(path string) (*FieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field config: %w", err)
	}
	return ParseFieldConfig(data)
}

// ParseFieldConfig 解析 YAML 数据
//
// 未出现的字段保持默认值。
func ParseFieldConfig(data []byte) (*FieldConfig, error) {
	cfg := DefaultFieldConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse field config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field config: %w", err)
	}

	return cfg, nil
}

// DefaultFieldConfig 返回与 field.DefaultConfig 一致的默认配置
func DefaultFieldConfig() *FieldConfig {
	return &FieldConfig{
		ParticleCount:     field.DefaultParticleCount,
		Margin:            field.DefaultMargin,
		RepulsionRadius:   field.DefaultRepulsionRadius,
		RepulsionStrength: field.DefaultRepulsionStrength,
		HomeRelaxation:    field.DefaultHomeRelaxation,
		AccentRatio:       field.DefaultAccentRatio,
		Radius:            "[0.5 2.5]",
		Speed:             "[0.2 0.7]",
		Opacity:           "[0.3 0.8]",
		Links: LinkConfig{
			Distance:   field.DefaultLinkDistance,
			MaxOpacity: field.DefaultLinkMaxOpacity,
			Width:      field.DefaultLinkWidth,
		},
		Colors: ColorConfig{
			Primary:    "#ffffff",
			Accent:     "#E63946",
			Link:       "#E63946",
			Background: "#0a0a0a",
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "Anti-Gravity",
		},
	}
}

// Validate 验证配置有效性
//
// 检查：
//   - 粒子数必须为正
//   - 浮点字段必须为有限值，repulsionStrength 与 links.width 不能为负
//   - 半径范围下界必须为正，不透明度范围在 0 ~ 1 之内
//   - 比例类字段在 0 ~ 1 之内
//   - 颜色均为合法十六进制
func (c *FieldConfig) Validate() error {
	for name, v := range map[string]float64{
		"margin":            c.Margin,
		"repulsionRadius":   c.RepulsionRadius,
		"repulsionStrength": c.RepulsionStrength,
		"homeRelaxation":    c.HomeRelaxation,
		"accentRatio":       c.AccentRatio,
		"links.distance":    c.Links.Distance,
		"links.maxOpacity":  c.Links.MaxOpacity,
		"links.width":       c.Links.Width,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v", name, v)
		}
	}

	if c.ParticleCount <= 0 {
		return fmt.Errorf("particleCount must be positive, got %d", c.ParticleCount)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %.1f", c.Margin)
	}
	if c.RepulsionRadius < 0 {
		return fmt.Errorf("repulsionRadius must not be negative, got %.1f", c.RepulsionRadius)
	}
	if c.RepulsionStrength < 0 {
		return fmt.Errorf("repulsionStrength must not be negative, got %.1f", c.RepulsionStrength)
	}
	if c.HomeRelaxation < 0 || c.HomeRelaxation > 1 {
		return fmt.Errorf("homeRelaxation must be within [0, 1], got %.3f", c.HomeRelaxation)
	}
	if c.AccentRatio < 0 || c.AccentRatio > 1 {
		return fmt.Errorf("accentRatio must be within [0, 1], got %.3f", c.AccentRatio)
	}

	radius, err := parseRange("radius", c.Radius)
	if err != nil {
		return err
	}
	if radius.Min <= 0 {
		return fmt.Errorf("radius must be positive, got %q", c.Radius)
	}

	speed, err := parseRange("speed", c.Speed)
	if err != nil {
		return err
	}
	if speed.Min < 0 {
		return fmt.Errorf("speed must not be negative, got %q", c.Speed)
	}

	opacity, err := parseRange("opacity", c.Opacity)
	if err != nil {
		return err
	}
	if opacity.Min < 0 || opacity.Max > 1 {
		return fmt.Errorf("opacity must be within [0, 1], got %q", c.Opacity)
	}

	if c.Links.Distance < 0 {
		return fmt.Errorf("links.distance must not be negative, got %.1f", c.Links.Distance)
	}
	if c.Links.MaxOpacity < 0 || c.Links.MaxOpacity > 1 {
		return fmt.Errorf("links.maxOpacity must be within [0, 1], got %.3f", c.Links.MaxOpacity)
	}
	if c.Links.Width < 0 {
		return fmt.Errorf("links.width must not be negative, got %.1f", c.Links.Width)
	}

	for name, hex := range map[string]string{
		"primary":    c.Colors.Primary,
		"accent":     c.Colors.Accent,
		"link":       c.Colors.Link,
		"background": c.Colors.Background,
	} {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("colors.%s: %w", name, err)
		}
	}

	return nil
}

// ToFieldConfig 转换为模拟器使用的 field.Config
//
// 调用前配置应已通过 Validate。
func (c *FieldConfig) ToFieldConfig() (field.Config, error) {
	out := field.Config{
		ParticleCount:     c.ParticleCount,
		Margin:            c.Margin,
		RepulsionRadius:   c.RepulsionRadius,
		RepulsionStrength: c.RepulsionStrength,
		HomeRelaxation:    c.HomeRelaxation,
		LinkDistance:      c.Links.Distance,
		LinkMaxOpacity:    c.Links.MaxOpacity,
		LinkWidth:         c.Links.Width,
		AccentRatio:       c.AccentRatio,
	}

	var err error
	if out.Radius, err = parseRange("radius", c.Radius); err != nil {
		return field.Config{}, err
	}
	if out.Speed, err = parseRange("speed", c.Speed); err != nil {
		return field.Config{}, err
	}
	if out.Opacity, err = parseRange("opacity", c.Opacity); err != nil {
		return field.Config{}, err
	}

	if out.PrimaryColor, err = ParseColor(c.Colors.Primary); err != nil {
		return field.Config{}, fmt.Errorf("colors.primary: %w", err)
	}
	if out.AccentColor, err = ParseColor(c.Colors.Accent); err != nil {
		return field.Config{}, fmt.Errorf("colors.accent: %w", err)
	}
	if out.LinkColor, err = ParseColor(c.Colors.Link); err != nil {
		return field.Config{}, fmt.Errorf("colors.link: %w", err)
	}

	return out, nil
}

// BackgroundColor 返回背景色，解析失败时返回黑色
func (c *FieldConfig) BackgroundColor() color.Color {
	bg, err := ParseColor(c.Colors.Background)
	if err != nil {
		return color.Black
	}
	return bg
}

// ParseColor 解析十六进制颜色（"#rgb" 或 "#rrggbb"）
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func parseRange(name, s string) (field.Range, error) {
	min, max, err := particle.ParseRange(s)
	if err != nil {
		return field.Range{}, fmt.Errorf("%s: %w", name, err)
	}
	return field.Range{Min: min, Max: max}, nil
}
