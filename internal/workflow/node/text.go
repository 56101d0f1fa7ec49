package node

import "unicode/utf8"

// TruncateByRunes 按 rune 截断到 maxRunes，保证不切断多字节字符
// 段落目标字数按字符计，字节截断会损坏日语文本
func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	seen := 0
	for i := range s {
		if seen == maxRunes {
			return s[:i]
		}
		seen++
	}
	return s
}
