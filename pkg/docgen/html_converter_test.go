package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMarkdownToHTML(t *testing.T) {
	conv := NewHtmlConverter()
	out, err := conv.ConvertMarkdownToHTML([]byte("# 标题\n\n**加粗** 文本"))
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>加粗</strong>")
}

func TestConvertMarkdownToPage(t *testing.T) {
	conv := NewHtmlConverter()
	page, err := conv.ConvertMarkdownToPage("第1周测验", []byte("- [x] 选项"))
	require.NoError(t, err)
	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<title>第1周测验</title>")
	assert.Contains(t, page, "@page")
	assert.Contains(t, page, "checkbox")
}

func TestNewPdfSinkRequiresFont(t *testing.T) {
	_, err := NewPdfSink("", "")
	assert.ErrorIs(t, err, ErrFontNotConfigured)

	_, err = NewPdfSink("/不存在/font.ttf", "")
	assert.Error(t, err)
}
