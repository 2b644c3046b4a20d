// Package particle 解析粒子配置中使用的数值记法
//
// 配置文件中的取值支持两种写法：
//   - 固定值: "1.5"
//   - 范围:   "[0.5 2.5]"（在 min 与 max 之间均匀随机），"[1.5]" 视为固定值
package particle

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// ParseRange 解析固定值或范围记法
//
// 返回：
//   - min, max: 范围上下界（固定值时二者相等）
//   - error: 格式无法识别、含 NaN/Inf 或 min > max 时返回错误
func ParseRange(s string) (min, max float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty value")
	}

	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return 0, 0, fmt.Errorf("unterminated range %q", s)
		}
		rangeStr := strings.TrimPrefix(s, "[")
		rangeStr = strings.TrimSuffix(rangeStr, "]")
		parts := strings.Fields(rangeStr)

		switch len(parts) {
		case 1:
			// 单值格式: "[value]"
			val, err := parseFinite(parts[0])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid range value %q: %w", parts[0], err)
			}
			return val, val, nil
		case 2:
			min, err = parseFinite(parts[0])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid range min %q: %w", parts[0], err)
			}
			max, err = parseFinite(parts[1])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid range max %q: %w", parts[1], err)
			}
			if min > max {
				return 0, 0, fmt.Errorf("range %q has min > max", s)
			}
			return min, max, nil
		default:
			return 0, 0, fmt.Errorf("range %q must have one or two values", s)
		}
	}

	// 固定值
	value, err := parseFinite(s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return value, value, nil
}

// parseFinite 解析有限浮点数，拒绝 NaN 和 ±Inf
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

// RandomInRange 返回 [min, max) 内的随机数；min >= max 时返回 min
func RandomInRange(rng *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rng.Float64()*(max-min)
}
