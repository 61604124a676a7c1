package docgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingpoem/moocscript/pkg/markup"
)

// recordSink 记录渲染调用，供断言
type recordSink struct {
	headings   []string
	paragraphs [][]Run
	images     []string
	imageErr   error
}

func (s *recordSink) AddHeading(level int, text string) {
	s.headings = append(s.headings, text)
}

func (s *recordSink) AddParagraph(runs []Run, indent float64, align Alignment) {
	s.paragraphs = append(s.paragraphs, runs)
}

func (s *recordSink) AddImage(path string, width float64, align Alignment) error {
	if s.imageErr != nil {
		return s.imageErr
	}
	s.images = append(s.images, path)
	return nil
}

type fakeResolver struct {
	path string
	err  error
}

func (f fakeResolver) Resolve(url string) (string, error) { return f.path, f.err }

func flatten(runs []Run) string {
	out := ""
	for _, r := range runs {
		out += r.Text
	}
	return out
}

func TestRenderOption(t *testing.T) {
	nodes := markup.Classify("**选项：**\n- [ ] 甲\n- [x] 乙")
	sink := &recordSink{}
	NewRenderer(nil).Render(nodes, sink)

	require.Len(t, sink.paragraphs, 3)
	assert.Equal(t, "A. 甲", flatten(sink.paragraphs[1]))
	assert.Equal(t, "B. 乙（正确答案）", flatten(sink.paragraphs[2]))

	// 正确选项整行加粗，答案标记为绿色
	correct := sink.paragraphs[2]
	assert.True(t, correct[0].Bold)
	last := correct[len(correct)-1]
	assert.Equal(t, "008000", last.Color)
}

func TestRenderFetchFailedPlaceholder(t *testing.T) {
	nodes := markup.Classify("![图A](http://e.com/a.png)")
	sink := &recordSink{}
	NewRenderer(fakeResolver{err: errors.New("超时")}).Render(nodes, sink)

	require.Len(t, sink.paragraphs, 1)
	assert.Equal(t, "[图片加载失败: 图A]", flatten(sink.paragraphs[0]))
	assert.Empty(t, sink.images)
}

func TestRenderNilResolverPlaceholder(t *testing.T) {
	nodes := markup.Classify("![图A](http://e.com/a.png)")
	sink := &recordSink{}
	NewRenderer(nil).Render(nodes, sink)

	require.Len(t, sink.paragraphs, 1)
	assert.Equal(t, "[图片: 图A]", flatten(sink.paragraphs[0]))
}

func TestRenderEmbedFailureFallsBack(t *testing.T) {
	nodes := markup.Classify("![图A](http://e.com/a.png)")
	sink := &recordSink{imageErr: errors.New("不支持的格式")}
	NewRenderer(fakeResolver{path: "/tmp/a.png"}).Render(nodes, sink)

	require.Len(t, sink.paragraphs, 1)
	assert.Equal(t, "[图片: 图A]", flatten(sink.paragraphs[0]))
}

func TestRenderBlockImage(t *testing.T) {
	nodes := markup.Classify("![图A](http://e.com/a.png)")
	sink := &recordSink{}
	NewRenderer(fakeResolver{path: "/tmp/a.png"}).Render(nodes, sink)

	assert.Equal(t, []string{"/tmp/a.png"}, sink.images)
	assert.Empty(t, sink.paragraphs)
}

func TestRenderInlineImageRun(t *testing.T) {
	nodes := markup.Classify("**题目：** 如图 ![图A](http://e.com/a.png) 所示")
	sink := &recordSink{}
	NewRenderer(fakeResolver{path: "/tmp/a.png"}).Render(nodes, sink)

	require.Len(t, sink.paragraphs, 1)
	runs := sink.paragraphs[0]
	var imageRun *Run
	for i := range runs {
		if runs[i].ImagePath != "" {
			imageRun = &runs[i]
		}
	}
	require.NotNil(t, imageRun)
	assert.Equal(t, "图A", imageRun.ImageAlt)
	assert.Equal(t, inlineImageWidth, imageRun.ImageWidth)
}

func TestRenderHeadingAndRule(t *testing.T) {
	nodes := markup.Classify("# 试卷\n---\n正文")
	sink := &recordSink{}
	NewRenderer(nil).Render(nodes, sink)

	assert.Equal(t, []string{"试卷"}, sink.headings)
	// 分隔线不产出版面内容
	require.Len(t, sink.paragraphs, 1)
	assert.Equal(t, "正文", flatten(sink.paragraphs[0]))
}
