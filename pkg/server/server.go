// Package server 提供挂载粒子背景的作品集页面服务
//
// 页面通过 wasm_exec.js 加载 js/wasm 构建的粒子场，
// /api/field 返回当前生效的粒子场配置，供前端或调试使用。
package server

import (
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/decker502/antigravity/pkg/config"
)

// Options 服务配置
type Options struct {
	// StaticDir wasm 构建产物目录（antigravity.wasm、wasm_exec.js）
	StaticDir string
	// Field 当前生效的粒子场配置
	Field *config.FieldConfig
	// Title 页面标题，为空时使用窗口标题
	Title string
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.title}}</title>
<style>
html, body { margin: 0; height: 100%; background: {{.background}}; overflow: hidden; }
canvas { position: fixed; inset: 0; z-index: 0; pointer-events: none; }
</style>
</head>
<body>
<script src="/static/wasm_exec.js"></script>
<script>
const go = new Go();
WebAssembly.instantiateStreaming(fetch("/static/antigravity.wasm"), go.importObject)
  .then((result) => go.run(result.instance))
  .catch((err) => console.warn("particle field unavailable:", err));
</script>
</body>
</html>
`

// NewRouter 创建 gin 路由
func NewRouter(opts Options) *gin.Engine {
	if opts.Field == nil {
		opts.Field = config.DefaultFieldConfig()
	}
	if opts.Title == "" {
		opts.Title = opts.Field.Window.Title
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("index.html").Parse(indexTemplate)))

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"title":      opts.Title,
			"background": template.CSS(opts.Field.Colors.Background),
		})
	})

	r.GET("/api/field", func(c *gin.Context) {
		c.JSON(http.StatusOK, opts.Field)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Printf("[Server] Routes registered (static=%q)", opts.StaticDir)
	return r
}
