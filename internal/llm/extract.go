package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// extractJSON 从可能夹带说明文字的模型回复中取出 JSON 对象：
// 定位第一个 { 和最后一个 }，解析中间的子串。
// 提示词已要求模型只输出 JSON，这个宽松策略足够用。
func extractJSON(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedReply)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return result, nil
}

// stringField 取字符串字段，缺失或为 null 时返回默认值
func stringField(m map[string]any, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// numberValue 数值字段的宽松解析，容忍模型把数字写成字符串
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// moodField 情绪值：缺失、非数值或为 0 时回落到 50
func moodField(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok || v == nil {
		return 50
	}
	n, ok := numberValue(v)
	if !ok || n == 0 {
		return 50
	}
	return int(n)
}
