package docgen

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// 字号，单位半磅
const (
	szHeading1 = 32 // 16pt
	szHeading2 = 24 // 12pt
	szHeading3 = 22 // 11pt
	szBody     = 21 // 10.5pt
)

// mediaFile ZIP内的一张图片
type mediaFile struct {
	name string
	data []byte
}

// DocxSink 在内存中构建DOCX文档。正文XML边渲染边拼接，
// Bytes时连同样式、关系和图片一起打包为ZIP
type DocxSink struct {
	body  strings.Builder
	media []mediaFile
}

// NewDocxSink 创建DOCX输出端
func NewDocxSink() *DocxSink {
	return &DocxSink{}
}

// AddHeading 标题段落。一级居中16磅，二级12磅，三级11磅，全部加粗
func (s *DocxSink) AddHeading(level int, text string) {
	size := szHeading3
	align := AlignLeft
	switch level {
	case 1:
		size = szHeading1
		align = AlignCenter
	case 2:
		size = szHeading2
	}
	s.body.WriteString("<w:p>")
	s.writePPr(0, align, 0)
	s.writeRun(Run{Text: text, Bold: true}, size)
	s.body.WriteString("</w:p>")
}

// AddParagraph 正文段落，段前段后间距为零保持紧凑
func (s *DocxSink) AddParagraph(runs []Run, indent float64, align Alignment) {
	s.body.WriteString("<w:p>")
	s.writePPr(indent, align, 0)
	for _, run := range runs {
		if run.ImagePath != "" {
			relID, err := s.registerImage(run.ImagePath)
			if err != nil {
				s.writeRun(Run{Text: fmt.Sprintf("[图片: %s]", run.ImageAlt)}, szBody)
				continue
			}
			s.writeDrawing(relID, run.ImageWidth)
			continue
		}
		s.writeRun(run, szBody)
	}
	s.body.WriteString("</w:p>")
}

// AddImage 独立成段的图片，带少量段间距。登记失败时不产出段落
func (s *DocxSink) AddImage(path string, width float64, align Alignment) error {
	relID, err := s.registerImage(path)
	if err != nil {
		return err
	}
	s.body.WriteString("<w:p>")
	s.writePPr(0, align, 60)
	s.writeDrawing(relID, width)
	s.body.WriteString("</w:p>")
	return nil
}

// writePPr 段落属性：缩进（英寸转twip）、对齐、间距（1/20磅）
func (s *DocxSink) writePPr(indent float64, align Alignment, spacing int) {
	s.body.WriteString("<w:pPr>")
	fmt.Fprintf(&s.body, `<w:spacing w:before="%d" w:after="%d"/>`, spacing, spacing)
	if indent > 0 {
		fmt.Fprintf(&s.body, `<w:ind w:left="%d"/>`, int(indent*1440))
	}
	if align == AlignCenter {
		s.body.WriteString(`<w:jc w:val="center"/>`)
	}
	s.body.WriteString("</w:pPr>")
}

// writeRun 一段同样式文本
func (s *DocxSink) writeRun(run Run, size int) {
	if run.Text == "" {
		return
	}
	s.body.WriteString("<w:r><w:rPr>")
	s.body.WriteString(`<w:rFonts w:ascii="宋体" w:eastAsia="宋体" w:hAnsi="宋体"/>`)
	if run.Bold {
		s.body.WriteString("<w:b/>")
	}
	if run.Color != "" {
		fmt.Fprintf(&s.body, `<w:color w:val="%s"/>`, run.Color)
	}
	fmt.Fprintf(&s.body, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, size, size)
	s.body.WriteString("</w:rPr>")
	fmt.Fprintf(&s.body, `<w:t xml:space="preserve">%s</w:t>`, escapeXML(run.Text))
	s.body.WriteString("</w:r>")
}

// registerImage 校验图片并登记到media，返回关系ID。
// 读不到文件或扩展名不支持视为嵌入失败
func (s *DocxSink) registerImage(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "jpg", "jpeg", "gif":
	default:
		return "", fmt.Errorf("不支持的图片格式: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("图片文件为空: %s", path)
	}

	s.media = append(s.media, mediaFile{
		name: fmt.Sprintf("image%d.%s", len(s.media)+1, ext),
		data: data,
	})
	// rId1和rId2已用于styles和numbering
	return fmt.Sprintf("rId%d", len(s.media)+2), nil
}

// writeDrawing 写入行内drawing元素
func (s *DocxSink) writeDrawing(relID string, width float64) {
	n := len(s.media)
	cx := int64(width * 914400)
	cy := cx * 3 / 4
	fmt.Fprintf(&s.body, `<w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/><wp:docPr id="%d" name="Image%d"/>`+
		`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`+
		`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:nvPicPr><pic:cNvPr id="%d" name="Image%d"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`,
		cx, cy, n, n, n, n, relID, cx, cy)
}

// Bytes 打包为完整的DOCX（ZIP）字节流，全程在内存中完成
func (s *DocxSink) Bytes() ([]byte, error) {
	outputBuffer := new(bytes.Buffer)
	zipWriter := zip.NewWriter(outputBuffer)

	mediaRels := ""
	for i, m := range s.media {
		mediaRels += fmt.Sprintf(`  <Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>
`, i+3, m.name)
		entry, err := zipWriter.Create("word/media/" + m.name)
		if err != nil {
			return nil, err
		}
		if _, err := entry.Write(m.data); err != nil {
			return nil, err
		}
	}
	wordRelsXML := getWordRelsXML() + mediaRels + "</Relationships>"

	files := map[string]string{
		"[Content_Types].xml":          getContentTypesXML(),
		"_rels/.rels":                  getRelsXML(),
		"word/_rels/document.xml.rels": wordRelsXML,
		"word/styles.xml":              getStylesXML(),
		"word/numbering.xml":           getNumberingXML(),
		"word/document.xml":            s.documentXML(),
	}

	for path, content := range files {
		entry, err := zipWriter.Create(path)
		if err != nil {
			return nil, err
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			return nil, err
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, err
	}
	return outputBuffer.Bytes(), nil
}

// documentXML 组装document.xml，页边距与导出版式保持紧凑
func (s *DocxSink) documentXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
` + s.body.String() + `
    <w:sectPr>
      <w:pgSz w:w="11906" w:h="16838"/>
      <w:pgMar w:top="720" w:right="864" w:bottom="720" w:left="864" w:header="720" w:footer="720"/>
    </w:sectPr>
  </w:body>
</w:document>`
}

// escapeXML 转义文本内容中的XML保留字符
func escapeXML(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// XML模板函数
func getContentTypesXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Default Extension="png" ContentType="image/png"/>
  <Default Extension="jpg" ContentType="image/jpeg"/>
  <Default Extension="jpeg" ContentType="image/jpeg"/>
  <Default Extension="gif" ContentType="image/gif"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
  <Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>
</Types>`
}

func getRelsXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
}

func getWordRelsXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>
`
}

func getStylesXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:ascii="宋体" w:eastAsia="宋体" w:hAnsi="宋体"/>
        <w:sz w:val="21"/>
        <w:szCs w:val="21"/>
      </w:rPr>
    </w:rPrDefault>
  </w:docDefaults>
  <w:style w:type="paragraph" w:styleId="Normal">
    <w:name w:val="Normal"/>
    <w:qFormat/>
    <w:pPr>
      <w:spacing w:after="0" w:line="240" w:lineRule="auto"/>
    </w:pPr>
  </w:style>
</w:styles>`
}

func getNumberingXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:abstractNum w:abstractNumId="0">
    <w:nsid w:val="12345678"/>
    <w:multiLevelType w:val="hybridMultilevel"/>
    <w:lvl w:ilvl="0">
      <w:start w:val="1"/>
      <w:numFmt w:val="bullet"/>
      <w:lvlText w:val="•"/>
      <w:lvlJc w:val="left"/>
      <w:pPr>
        <w:ind w:left="720" w:hanging="360"/>
      </w:pPr>
    </w:lvl>
  </w:abstractNum>
  <w:num w:numId="1">
    <w:abstractNumId w:val="0"/>
  </w:num>
</w:numbering>`
}
