package exporter

import (
	"html"
	"regexp"
	"strings"
)

var (
	imgTagRe     = regexp.MustCompile(`(?i)<img[^>]*\bsrc\s*=\s*["']([^"']+)["'][^>]*>`)
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`[ \t\r\n\f\v\x{00A0}\x{3000}]+`)
)

// 不可见的双向控制与零宽字符，平台富文本里经常混入
var invisibleRunes = map[rune]bool{
	'\u200B': true, // ZWSP
	'\u200C': true, // ZWNJ
	'\u200D': true, // ZWJ
	'\u200E': true, // LRM
	'\u200F': true, // RLM
	'\uFEFF': true, // BOM
	'\u202A': true, // LRE
	'\u202B': true, // RLE
	'\u202C': true, // PDF
	'\u202D': true, // LRO
	'\u202E': true, // RLO
	'\u2066': true, // LRI
	'\u2067': true, // RLI
	'\u2068': true, // FSI
	'\u2069': true, // PDI
}

// CleanHTML 将平台返回的HTML片段转为单行纯文本：
// img标签转为行内图片引用，其余标签剥除，实体解码，
// 零宽/双向控制字符删除，连续空白折叠为单个空格
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}
	s = imgTagRe.ReplaceAllString(s, " ![图片]($1) ")
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = strings.Map(func(r rune) rune {
		if invisibleRunes[r] {
			return -1
		}
		return r
	}, s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
