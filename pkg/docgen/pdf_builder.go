package docgen

import (
	"errors"
	"fmt"

	"github.com/signintech/gopdf"
)

// ErrFontNotConfigured PDF输出需要一个本地TTF字体
var ErrFontNotConfigured = errors.New("未配置PDF字体")

// A4页面与版心，单位磅
const (
	pdfPageWidth  = 595.28
	pdfPageHeight = 841.89
	pdfMarginX    = 43.2 // 0.6英寸
	pdfMarginY    = 36.0 // 0.5英寸
)

// 字号映射，单位磅
var pdfHeadingSizes = map[int]float64{1: 16, 2: 12, 3: 11}

const pdfBodySize = 10.5

// PdfSink 基于gopdf的PDF输出端。自行维护光标和换页，
// 中文文本按字符宽度贪心折行
type PdfSink struct {
	pdf     *gopdf.GoPdf
	hasBold bool
	x, y    float64
	err     error // 首个不可恢复错误，Bytes时上报
}

// NewPdfSink 创建PDF输出端。fontPath必填；boldFontPath为空时粗体退化为常规字重
func NewPdfSink(fontPath, boldFontPath string) (*PdfSink, error) {
	if fontPath == "" {
		return nil, ErrFontNotConfigured
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	if err := pdf.AddTTFFont("main", fontPath); err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}
	hasBold := false
	if boldFontPath != "" {
		if err := pdf.AddTTFFont("main-bold", boldFontPath); err != nil {
			return nil, fmt.Errorf("加载粗体字体失败: %w", err)
		}
		hasBold = true
	}

	pdf.AddPage()
	return &PdfSink{pdf: pdf, hasBold: hasBold, x: pdfMarginX, y: pdfMarginY}, nil
}

// AddHeading 标题。一级居中，短标题按测量宽度水平居中
func (s *PdfSink) AddHeading(level int, text string) {
	size, ok := pdfHeadingSizes[level]
	if !ok {
		size = pdfHeadingSizes[3]
	}
	s.setFont(true, size)
	s.pageBreakIfNeeded(size * 1.6)

	if level == 1 {
		if w, err := s.pdf.MeasureTextWidth(text); err == nil && w < pdfPageWidth-2*pdfMarginX {
			s.x = (pdfPageWidth - w) / 2
		}
	}
	s.writeWrapped(text, true, false, size, pdfMarginX)
	s.endLine(size)
}

// AddParagraph 正文段落。各Run依次排版，行内图片按块图处理
func (s *PdfSink) AddParagraph(runs []Run, indent float64, align Alignment) {
	indentX := pdfMarginX + indent*72
	s.x = indentX
	s.pageBreakIfNeeded(pdfBodySize * 1.6)

	wrote := false
	for _, run := range runs {
		if run.ImagePath != "" {
			if wrote {
				s.endLine(pdfBodySize)
			}
			if err := s.drawImage(run.ImagePath, run.ImageWidth*72, indentX); err != nil {
				s.setFont(false, pdfBodySize)
				s.writeWrapped(fmt.Sprintf("[图片: %s]", run.ImageAlt), false, false, pdfBodySize, indentX)
				wrote = true
			}
			continue
		}
		s.setFont(run.Bold, pdfBodySize)
		s.writeWrapped(run.Text, run.Bold, run.Color == correctColor, pdfBodySize, indentX)
		wrote = true
	}
	if wrote {
		s.endLine(pdfBodySize)
	}
}

// AddImage 独立成段的居中图片
func (s *PdfSink) AddImage(path string, width float64, align Alignment) error {
	x := pdfMarginX
	w := width * 72
	if align == AlignCenter && w < pdfPageWidth-2*pdfMarginX {
		x = (pdfPageWidth - w) / 2
	}
	return s.drawImage(path, w, x)
}

// Bytes 输出PDF字节流
func (s *PdfSink) Bytes() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pdf.GetBytesPdf(), nil
}

func (s *PdfSink) setFont(bold bool, size float64) {
	family := "main"
	if bold && s.hasBold {
		family = "main-bold"
	}
	if err := s.pdf.SetFont(family, "", size); err != nil && s.err == nil {
		s.err = err
	}
}

// writeWrapped 按字符宽度贪心折行写出文本，从当前光标续排
func (s *PdfSink) writeWrapped(text string, bold, green bool, size, indentX float64) {
	if green {
		s.pdf.SetTextColor(0, 128, 0)
	} else {
		s.pdf.SetTextColor(0, 0, 0)
	}
	lineH := size * 1.6
	maxX := pdfPageWidth - pdfMarginX

	chunk := ""
	chunkW := 0.0
	flush := func() {
		if chunk == "" {
			return
		}
		s.pdf.SetXY(s.x, s.y)
		if err := s.pdf.Cell(nil, chunk); err != nil && s.err == nil {
			s.err = err
		}
		s.x += chunkW
		chunk = ""
		chunkW = 0
	}

	for _, r := range text {
		w, err := s.pdf.MeasureTextWidth(string(r))
		if err != nil {
			w = size
		}
		if s.x+chunkW+w > maxX {
			flush()
			s.x = indentX
			s.y += lineH
			s.pageBreakIfNeeded(lineH)
		}
		chunk += string(r)
		chunkW += w
	}
	flush()
	s.pdf.SetTextColor(0, 0, 0)
}

// drawImage 画一张图并把光标移到图下方，带少量垂直留白
func (s *PdfSink) drawImage(path string, w, x float64) error {
	h := w * 3 / 4
	s.pageBreakIfNeeded(h + 8)
	if err := s.pdf.Image(path, x, s.y+4, &gopdf.Rect{W: w, H: h}); err != nil {
		return err
	}
	s.y += h + 8
	s.x = pdfMarginX
	return nil
}

func (s *PdfSink) endLine(size float64) {
	s.x = pdfMarginX
	s.y += size * 1.6
}

func (s *PdfSink) pageBreakIfNeeded(h float64) {
	if s.y+h > pdfPageHeight-pdfMarginY {
		s.pdf.AddPage()
		s.y = pdfMarginY
	}
}
