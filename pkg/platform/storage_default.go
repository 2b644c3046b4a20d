//go:build !android

package platform

// EnsureStorageDir 非 Android 平台无需处理，gdata 会自行创建存储目录
func EnsureStorageDir() error {
	return nil
}
