package docgen

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// PDF中间产物的页面样式
const htmlPageStyle = `
    @page {
        size: A4;
        margin: 2cm;
    }
    body {
        font-family: "DejaVu Sans", "SimSun", "Microsoft YaHei", sans-serif;
        font-size: 12pt;
        line-height: 1.6;
        color: #333;
    }
    h1 {
        font-size: 24pt;
        margin-top: 1em;
        margin-bottom: 0.5em;
        border-bottom: 2px solid #333;
        padding-bottom: 0.3em;
    }
    h2 {
        font-size: 18pt;
        margin-top: 0.8em;
        margin-bottom: 0.4em;
        border-bottom: 1px solid #666;
        padding-bottom: 0.2em;
    }
    h3 {
        font-size: 14pt;
        margin-top: 0.6em;
        margin-bottom: 0.3em;
    }
    code {
        font-family: "DejaVu Sans Mono", "Consolas", monospace;
        background-color: #f5f5f5;
        padding: 2px 4px;
        border-radius: 3px;
    }
    pre {
        background-color: #f5f5f5;
        padding: 10px;
        border-radius: 5px;
        overflow-x: auto;
    }
    pre code {
        background-color: transparent;
        padding: 0;
    }
    ul, ol {
        margin-left: 1.5em;
    }
    li {
        margin-bottom: 0.3em;
    }
    strong {
        font-weight: bold;
    }
`

// HtmlConverter 负责将Markdown转换为HTML
type HtmlConverter struct {
	md goldmark.Markdown
}

// NewHtmlConverter 创建一个新的HTML转换器
func NewHtmlConverter() *HtmlConverter {
	// GFM扩展支持任务列表（选项复选框）和表格
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(), // 允许原始HTML通过
		),
	)
	return &HtmlConverter{md: md}
}

// ConvertMarkdownToHTML 将Markdown渲染为HTML片段
func (c *HtmlConverter) ConvertMarkdownToHTML(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(source, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ConvertMarkdownToPage 将Markdown渲染为带样式的完整HTML页面，
// 作为PDF转换的中间产物保存
func (c *HtmlConverter) ConvertMarkdownToPage(title string, source []byte) (string, error) {
	body, err := c.ConvertMarkdownToHTML(source)
	if err != nil {
		return "", err
	}
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8" />
    <title>%s</title>
    <style>%s</style>
</head>
<body>
%s
</body>
</html>
`, title, htmlPageStyle, body)
	return page, nil
}
