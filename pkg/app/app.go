// Package app 提供粒子背景应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端、浏览器（js/wasm）
// 和移动端共用。桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/antigravity/pkg/config"
	"github.com/decker502/antigravity/pkg/embedded"
	"github.com/decker502/antigravity/pkg/field"
	"github.com/decker502/antigravity/pkg/game"
	"github.com/decker502/antigravity/pkg/platform"
	"github.com/decker502/antigravity/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// StorageAppName gdata 存储使用的应用名
const StorageAppName = "antigravity"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 磁盘上的粒子场配置，为空则使用内嵌的 data/field.yaml
	ConfigPath string
	// LinkMode 强制开启连线模式（覆盖已保存的设置）
	LinkMode bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// NoPersist 不打开 gdata 存储，设置只保存在内存中
	NoPersist bool
}

// App 是粒子背景应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	fieldConfig *config.FieldConfig
	background  color.Color

	sim       *field.Simulator
	surface   *render.EbitenSurface
	scheduler *field.StepScheduler
	settings  *game.SettingsManager

	width, height int
	started       bool
	closed        bool
	startErr      error

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用内嵌配置时，调用此函数前必须先调用 embedded.Init()。
// 粒子场在第一次 Layout 得到窗口尺寸后启动。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fieldConfig, err := loadFieldConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("粒子场配置加载失败: %w", err)
	}
	simConfig, err := fieldConfig.ToFieldConfig()
	if err != nil {
		return nil, fmt.Errorf("粒子场配置转换失败: %w", err)
	}
	log.Printf("[Config] 粒子数: %d, 排斥半径: %.0f, 连线距离: %.0f",
		simConfig.ParticleCount, simConfig.RepulsionRadius, simConfig.LinkDistance)

	var settings *game.SettingsManager
	if cfg.NoPersist {
		settings, err = game.NewSettingsManager(nil)
	} else {
		settings, err = game.NewSettingsManager(game.OpenStorage(StorageAppName))
	}
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}
	if cfg.LinkMode {
		settings.SetLinkMode(true)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	surface := render.NewEbitenSurface(true)
	scheduler := field.NewStepScheduler()
	sim := field.New(simConfig, surface, scheduler, rand.New(rand.NewSource(seed)))
	sim.SetLinkMode(settings.GetSettings().LinkMode)

	log.Printf("[App] Field initialized (seed=%d, linkMode=%v)", seed, sim.LinkMode())

	return &App{
		fieldConfig: fieldConfig,
		background:  fieldConfig.BackgroundColor(),
		sim:         sim,
		surface:     surface,
		scheduler:   scheduler,
		settings:    settings,
		verbose:     cfg.Verbose,
	}, nil
}

// loadFieldConfig 从磁盘或内嵌数据加载配置
func loadFieldConfig(path string) (*config.FieldConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载粒子场配置: %s", path)
		return config.LoadFieldConfig(path)
	}

	if !embedded.IsInitialized() {
		log.Printf("[Config] 内嵌数据未初始化，使用默认配置")
		return config.DefaultFieldConfig(), nil
	}
	data, err := embedded.ReadFile(config.DefaultFieldConfigPath)
	if err != nil {
		return nil, err
	}
	return config.ParseFieldConfig(data)
}

// Update 更新输入并推进一帧
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.fieldConfig.Window.Width, a.fieldConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.fieldConfig.Window.Width, a.fieldConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if platform.IsMobile() {
		// 双指轻触切换连线模式
		if platform.IsMultiTouchJustStarted() {
			a.ToggleLinkMode()
		}
	} else {
		// F11 切换全屏
		if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
			a.toggleFullscreen()
		}

		// L 切换连线模式（Lab Mode）
		if inpututil.IsKeyJustPressed(ebiten.KeyL) {
			a.ToggleLinkMode()
		}
	}

	a.updatePointer()
	a.stepFrame()
	return nil
}

// stepFrame 驱动调度器执行一帧
func (a *App) stepFrame() {
	if a.started {
		a.scheduler.Step()
	}
}

// updatePointer 将光标或第一个触点写入模拟器
// 触点优先于鼠标；光标不在视口内时清除指针
func (a *App) updatePointer() {
	x, y, touching := platform.PointerPosition()
	if touching {
		a.sim.SetPointer(float64(x), float64(y))
		return
	}
	if platform.IsMobile() {
		// 手指离开屏幕后没有光标
		a.sim.ClearPointer()
		return
	}
	a.sim.SetPointer(PointerInViewport(x, y, a.width, a.height))
}

// PointerInViewport 视口内返回光标坐标，视口外返回 field.PointerNone 哨兵
func PointerInViewport(x, y, width, height int) (float64, float64) {
	if x < 0 || y < 0 || x >= width || y >= height {
		return field.PointerNone, field.PointerNone
	}
	return float64(x), float64(y)
}

func (a *App) toggleFullscreen() {
	enter := !ebiten.IsFullscreen()
	if !enter {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(enter)
	a.saveSettings()
}

// ToggleLinkMode 切换连线模式并持久化
func (a *App) ToggleLinkMode() {
	enabled := a.settings.ToggleLinkMode()
	a.sim.SetLinkMode(enabled)
	log.Printf("[App] Link mode: %v", enabled)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制背景色和粒子离屏图像
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.background)
	if img := a.surface.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
}

// Layout 视口跟随窗口尺寸
//
// 第一次调用时启动粒子场；之后尺寸变化时转发给 Resize。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		if a.started {
			a.sim.Resize(outsideWidth, outsideHeight)
			log.Printf("[App] Resize %dx%d", outsideWidth, outsideHeight)
		}
	}

	if !a.started && !a.closed && a.startErr == nil {
		if err := a.sim.Start(a.width, a.height); err != nil {
			// 表面不可用：不自动重试，只显示背景色
			a.startErr = err
			log.Printf("[App] Failed to start field: %v", err)
		} else {
			a.started = true
			log.Printf("[App] Field started at %dx%d", a.width, a.height)
		}
	}

	return max(outsideWidth, 1), max(outsideHeight, 1)
}

// Close 停止粒子场并保存设置
// 可重复调用
func (a *App) Close() {
	a.sim.Stop()
	a.started = false
	a.closed = true
	a.saveSettings()
}

// StartErr 返回粒子场启动失败的原因，未失败时为 nil
func (a *App) StartErr() error {
	return a.startErr
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// Simulator 返回粒子场模拟器
func (a *App) Simulator() *field.Simulator {
	return a.sim
}

// WindowConfig 返回窗口初始配置
func (a *App) WindowConfig() config.WindowConfig {
	return a.fieldConfig.Window
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
