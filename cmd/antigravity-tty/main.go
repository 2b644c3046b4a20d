// antigravity-tty 在终端中运行粒子场
//
// 用法：
//
//	go run ./cmd/antigravity-tty [--config data/field.yaml] [--links] [--verbose]
//
// 按键：l 切换连线模式，q / Esc / Ctrl-C 退出。鼠标移动会推开粒子，
// 终端失去焦点时指针失效。
package main

import (
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/antigravity/pkg/config"
	"github.com/decker502/antigravity/pkg/field"
	"github.com/decker502/antigravity/pkg/render/terminal"
)

var (
	configFlag  = flag.String("config", "", "粒子场配置文件路径（默认使用内置配置）")
	linksFlag   = flag.Bool("links", false, "启动时开启连线模式")
	seedFlag    = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging to stderr")
)

// terminalField 将终端事件与帧时钟转换为模拟器调用
// 所有模拟器调用都发生在 run 所在的 goroutine 上
type terminalField struct {
	screen    tcell.Screen
	surface   *terminal.TcellSurface
	scheduler *field.StepScheduler
	sim       *field.Simulator
}

func newTerminalField(screen tcell.Screen, cfg field.Config, seed int64) *terminalField {
	surface := terminal.NewTcellSurface(screen, terminal.DefaultCellWidth, terminal.DefaultCellHeight)
	scheduler := field.NewStepScheduler()
	return &terminalField{
		screen:    screen,
		surface:   surface,
		scheduler: scheduler,
		sim:       field.New(cfg, surface, scheduler, rand.New(rand.NewSource(seed))),
	}
}

// start 按当前终端尺寸启动粒子场
func (t *terminalField) start() error {
	w, h := t.surface.PixelSize(t.screen.Size())
	if err := t.sim.Start(w, h); err != nil {
		return err
	}
	log.Printf("[TTY] Field started at %dx%d px", w, h)
	return nil
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (t *terminalField) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'l', 'L':
				t.sim.SetLinkMode(!t.sim.LinkMode())
				log.Printf("[TTY] Link mode: %v", t.sim.LinkMode())
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		cols, rows := t.screen.Size()
		if col < 0 || row < 0 || col >= cols || row >= rows {
			t.sim.ClearPointer()
			break
		}
		t.sim.SetPointer(t.surface.CellCenter(col, row))

	case *tcell.EventFocus:
		// 终端失去焦点后收不到鼠标事件，最后的位置不再有效
		if !ev.Focused {
			t.sim.ClearPointer()
		}

	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := ev.Size()
		t.sim.Resize(t.surface.PixelSize(cols, rows))
	}
	return true
}

// tick 推进一帧并刷新屏幕
func (t *terminalField) tick() {
	if t.scheduler.Step() {
		t.screen.Show()
	}
}

func (t *terminalField) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// 屏幕已关闭
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.tick()
		}
	}
}

func loadConfig(path string) (*config.FieldConfig, error) {
	if path == "" {
		return config.DefaultFieldConfig(), nil
	}
	return config.LoadFieldConfig(path)
}

func main() {
	flag.Parse()

	// 终端被 tcell 占用，日志默认丢弃
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	fieldConfig, err := loadConfig(*configFlag)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("配置加载失败: %v", err)
	}
	simConfig, err := fieldConfig.ToFieldConfig()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("配置转换失败: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("终端初始化失败: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("终端初始化失败: %v", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tf := newTerminalField(screen, simConfig, seed)
	tf.sim.SetLinkMode(*linksFlag)
	if err := tf.start(); err != nil {
		screen.Fini()
		log.SetOutput(os.Stderr)
		log.Fatalf("粒子场启动失败: %v", err)
	}

	tf.run()

	tf.sim.Stop()
	screen.Fini()
}
