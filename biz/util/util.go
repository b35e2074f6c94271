package util

import "strings"

// NormalizeSymbol 统一资产符号，大写去空白
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseSymbols 解析逗号分隔的符号列表
func ParseSymbols(s string) []string {
	var res []string
	for _, p := range strings.Split(s, ",") {
		p = NormalizeSymbol(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
