//go:build mobile

// Package platform 封装桌面端与移动端的差异：指针输入、平台检测和存储目录
package platform

// IsMobile 移动端编译时返回 true
func IsMobile() bool {
	return true
}
