package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/antigravity/pkg/app"
	"github.com/decker502/antigravity/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "粒子场配置文件路径（默认使用内嵌的 data/field.yaml）")
	linksFlag   = flag.Bool("links", false, "启动时开启连线模式")
	seedFlag    = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	fieldApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		LinkMode:   *linksFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer fieldApp.Close()

	window := fieldApp.WindowConfig()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(fieldApp.Settings().GetSettings().Fullscreen)

	if err := ebiten.RunGame(fieldApp); err != nil {
		log.Printf("[Main] RunGame error: %v", err)
	}
	log.Println("[Main] Field closed")
}
