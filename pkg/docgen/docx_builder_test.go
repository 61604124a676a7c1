package docgen

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readZipPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			content, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(content)
		}
	}
	t.Fatalf("zip内缺少文件 %s", name)
	return ""
}

func TestDocxSinkBasicDocument(t *testing.T) {
	sink := NewDocxSink()
	sink.AddHeading(1, "第1周测验")
	sink.AddHeading(3, "1. 单选题")
	sink.AddParagraph([]Run{
		{Text: "A. ", Bold: true},
		{Text: "选项内容", Bold: true},
		{Text: "（正确答案）", Bold: true, Color: "008000"},
	}, 0.3, AlignLeft)

	data, err := sink.Bytes()
	require.NoError(t, err)

	doc := readZipPart(t, data, "word/document.xml")
	assert.Contains(t, doc, "第1周测验")
	assert.Contains(t, doc, "选项内容")
	assert.Contains(t, doc, `w:val="008000"`)
	assert.Contains(t, doc, "宋体")

	readZipPart(t, data, "[Content_Types].xml")
	readZipPart(t, data, "_rels/.rels")
	readZipPart(t, data, "word/_rels/document.xml.rels")
	readZipPart(t, data, "word/styles.xml")
	readZipPart(t, data, "word/numbering.xml")
}

func TestDocxSinkEscapesXML(t *testing.T) {
	sink := NewDocxSink()
	sink.AddParagraph([]Run{{Text: `a<b>&"c"`}}, 0, AlignLeft)
	data, err := sink.Bytes()
	require.NoError(t, err)

	doc := readZipPart(t, data, "word/document.xml")
	assert.Contains(t, doc, "a&lt;b&gt;&amp;&quot;c&quot;")
	assert.NotContains(t, doc, "a<b>")
}

func TestDocxSinkEmbedsImage(t *testing.T) {
	img := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, os.WriteFile(img, []byte("fake-png-bytes"), 0644))

	sink := NewDocxSink()
	require.NoError(t, sink.AddImage(img, 5.0, AlignCenter))

	data, err := sink.Bytes()
	require.NoError(t, err)

	doc := readZipPart(t, data, "word/document.xml")
	assert.Contains(t, doc, "wp:inline")
	assert.Contains(t, doc, "rId3")

	media := readZipPart(t, data, "word/media/image1.png")
	assert.Equal(t, "fake-png-bytes", media)

	rels := readZipPart(t, data, "word/_rels/document.xml.rels")
	assert.Contains(t, rels, "media/image1.png")
}

func TestDocxSinkRejectsBadImage(t *testing.T) {
	sink := NewDocxSink()
	assert.Error(t, sink.AddImage("/不存在/a.png", 5.0, AlignCenter))
	assert.Error(t, sink.AddImage("file.bmp", 5.0, AlignCenter))

	// 失败的图片不留下残缺段落
	data, err := sink.Bytes()
	require.NoError(t, err)
	doc := readZipPart(t, data, "word/document.xml")
	assert.NotContains(t, doc, "wp:inline")
}

func TestDocxSinkInlineImageFallback(t *testing.T) {
	sink := NewDocxSink()
	sink.AddParagraph([]Run{
		{Text: "如图"},
		{ImagePath: "/不存在/b.png", ImageWidth: 2.0, ImageAlt: "图B"},
	}, 0, AlignLeft)

	data, err := sink.Bytes()
	require.NoError(t, err)
	doc := readZipPart(t, data, "word/document.xml")
	assert.Contains(t, doc, "[图片: 图B]")
}
