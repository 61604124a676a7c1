package docgen

import (
	"fmt"

	"github.com/kingpoem/moocscript/pkg/logger"
	"github.com/kingpoem/moocscript/pkg/markup"
)

// Alignment 段落对齐方式
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
)

// 固定版式常量，单位英寸
const (
	optionIndent     = 0.3 // 字母选项缩进
	listIndent       = 0.2 // 普通列表项缩进
	blockImageWidth  = 5.0 // 独立成段图片宽度
	inlineImageWidth = 2.0 // 行内嵌入图片宽度
)

// 正确答案标记的颜色（绿色）
const correctColor = "008000"

// Run 段落中的一段同样式文本，或一张行内图片
type Run struct {
	Text       string
	Bold       bool
	Color      string  // RRGGBB，空为默认色
	ImagePath  string  // 非空表示行内图片
	ImageWidth float64 // 行内图片宽度，英寸
	ImageAlt   string  // 嵌入失败时占位文本用
}

// Sink 样式化文档的输出端。DOCX和PDF各实现一份
type Sink interface {
	AddHeading(level int, text string)
	AddParagraph(runs []Run, indent float64, align Alignment)
	AddImage(path string, width float64, align Alignment) error
}

// Resolver 图片解析器，URL换本地路径
type Resolver interface {
	Resolve(url string) (string, error)
}

// Renderer 将分类后的节点流渲染进Sink。
// 图片获取失败和嵌入失败都就地降级为占位文本，绝不中断整篇渲染
type Renderer struct {
	resolver Resolver
}

// NewRenderer 创建渲染器。resolver为nil时所有图片降级为占位文本
func NewRenderer(resolver Resolver) *Renderer {
	return &Renderer{resolver: resolver}
}

// Render 渲染节点流
func (r *Renderer) Render(nodes []markup.Node, sink Sink) {
	for _, node := range nodes {
		switch node.Kind {
		case markup.KindHeading:
			sink.AddHeading(node.Level, node.Text)

		case markup.KindBoldLabel, markup.KindOptionsStart:
			runs := []Run{{Text: node.Label, Bold: true}}
			runs = append(runs, r.inlineRuns(node.Segments, false)...)
			sink.AddParagraph(runs, 0, AlignLeft)

		case markup.KindOption:
			runs := []Run{{Text: fmt.Sprintf("%c. ", node.Letter), Bold: node.Correct}}
			runs = append(runs, r.inlineRuns(node.Segments, node.Correct)...)
			if node.Correct {
				runs = append(runs, Run{Text: "（正确答案）", Bold: true, Color: correctColor})
			}
			sink.AddParagraph(runs, optionIndent, AlignLeft)

		case markup.KindListItem:
			sink.AddParagraph([]Run{{Text: "• " + node.Text}}, listIndent, AlignLeft)

		case markup.KindText:
			if node.OnlyImages() {
				// 纯图片行只产出图片段落，不附带空文本段落
				for _, seg := range node.Segments {
					if seg.Image != nil {
						r.addBlockImage(sink, seg.Image)
					}
				}
				continue
			}
			sink.AddParagraph(r.inlineRuns(node.Segments, false), 0, AlignLeft)

		case markup.KindRule:
			// 分隔线不落版面，段落间距已足够紧凑
		}
	}
}

// inlineRuns 将行内片段转为文本与嵌入图片混排的Run序列
func (r *Renderer) inlineRuns(segs []markup.Segment, bold bool) []Run {
	var runs []Run
	for _, seg := range segs {
		if seg.Image == nil {
			if seg.Text != "" {
				runs = append(runs, Run{Text: seg.Text, Bold: bold})
			}
			continue
		}
		path, err := r.resolve(seg.Image)
		if err != nil {
			runs = append(runs, Run{Text: fetchFailedPlaceholder(seg.Image), Bold: bold})
			continue
		}
		if path == "" {
			runs = append(runs, Run{Text: unresolvedPlaceholder(seg.Image), Bold: bold})
			continue
		}
		runs = append(runs, Run{ImagePath: path, ImageWidth: inlineImageWidth, ImageAlt: seg.Image.Alt})
	}
	return runs
}

// addBlockImage 独立成段的居中图片，失败降级为占位文本段落
func (r *Renderer) addBlockImage(sink Sink, img *markup.ImageRef) {
	path, err := r.resolve(img)
	if err != nil {
		sink.AddParagraph([]Run{{Text: fetchFailedPlaceholder(img)}}, 0, AlignLeft)
		return
	}
	if path == "" {
		sink.AddParagraph([]Run{{Text: unresolvedPlaceholder(img)}}, 0, AlignLeft)
		return
	}
	if err := sink.AddImage(path, blockImageWidth, AlignCenter); err != nil {
		logger.Warn("图片嵌入失败", logger.F("path", path), logger.F("err", err))
		sink.AddParagraph([]Run{{Text: unresolvedPlaceholder(img)}}, 0, AlignLeft)
	}
}

// resolve 路径为空且无错误表示未配置解析器
func (r *Renderer) resolve(img *markup.ImageRef) (string, error) {
	if r.resolver == nil {
		return "", nil
	}
	return r.resolver.Resolve(img.URL)
}

// 下载失败的占位文本
func fetchFailedPlaceholder(img *markup.ImageRef) string {
	return fmt.Sprintf("[图片加载失败: %s]", img.Alt)
}

// 未解析或嵌入失败的占位文本
func unresolvedPlaceholder(img *markup.ImageRef) string {
	return fmt.Sprintf("[图片: %s]", img.Alt)
}
