package node

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ExtractJSONObject 从模型输出中截取第一个完整的 JSON 对象或数组。
// 模型常在 JSON 前后夹杂说明文字或代码围栏，这里做容错截取；
// 截不出合法 JSON 时返回去除首尾空白的原文，交由上层解析报错。
func ExtractJSONObject(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return raw
	}

	if start, end := jsonValueBounds(raw); start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	// 以 Decoder 校验截取结果至少是一个 JSON 对象/数组的开头
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if tok, err := dec.Token(); err == nil {
		if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
			return raw
		}
	}

	// 兜底：消费到 EOF 确认余下内容可解析，否则退回原文
	dec = json.NewDecoder(strings.NewReader(raw))
	for {
		if _, err := dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return strings.TrimSpace(s)
		}
	}
	return raw
}

// jsonValueBounds 定位首个 JSON 值（对象或数组）的起止下标
func jsonValueBounds(raw string) (int, int) {
	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		return objStart, strings.LastIndex(raw, "}")
	case arrStart >= 0:
		return arrStart, strings.LastIndex(raw, "]")
	}
	return -1, -1
}
