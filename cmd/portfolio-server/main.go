// portfolio-server 提供挂载粒子背景的页面
//
// 环境变量（可写在 .env 中）：
//
//	PORT          监听端口，默认 8080
//	STATIC_DIR    wasm 构建产物目录，默认 ./web
//	FIELD_CONFIG  粒子场配置文件，默认使用内置配置
//
// wasm 构建：
//
//	GOOS=js GOARCH=wasm go build -o web/antigravity.wasm .
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/
package main

import (
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/decker502/antigravity/pkg/config"
	"github.com/decker502/antigravity/pkg/server"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	fieldConfig := config.DefaultFieldConfig()
	if path := os.Getenv("FIELD_CONFIG"); path != "" {
		cfg, err := config.LoadFieldConfig(path)
		if err != nil {
			log.Fatalf("[Server] 配置加载失败: %v", err)
		}
		fieldConfig = cfg
	}

	r := server.NewRouter(server.Options{
		StaticDir: getenv("STATIC_DIR", "./web"),
		Field:     fieldConfig,
	})

	port := getenv("PORT", "8080")
	log.Printf("[Server] Listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}
