//go:build !mobile

// Package platform 封装桌面端与移动端的差异：指针输入、平台检测和存储目录
package platform

import "os"

// MobileEmulateEnv 设为 "1" 时在桌面端模拟移动模式（用于本地调试触摸交互）
const MobileEmulateEnv = "ANTIGRAVITY_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
