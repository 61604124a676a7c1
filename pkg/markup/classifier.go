package markup

import (
	"regexp"
	"strings"
)

// OptionsMarker 选项区起始标签的字面量
const OptionsMarker = "**选项：**"

// lookBackWindow 选项回溯窗口。选项标签与首个选项之间允许穿插的最大行数，
// 超出即不再回溯，避免对整个文档做反向扫描
const lookBackWindow = 5

var (
	checkboxRe  = regexp.MustCompile(`^- \[([ xX])\] ?(.*)$`)
	boldLabelRe = regexp.MustCompile(`^\*\*(.+?)\*\*\s*(.*)$`)
	imageRe     = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
)

// State 分类器状态。整个结构随每一行的处理以值传递，
// 转移是 (状态, 当前行, 回溯窗口) 到 (新状态, 节点) 的纯函数
type State struct {
	InOptionsBlock bool
	OptionIndex    int
}

// Classify 将标记文本整体分类为节点流
func Classify(text string) []Node {
	return ClassifyLines(strings.Split(text, "\n"))
}

// ClassifyLines 逐行分类
func ClassifyLines(lines []string) []Node {
	st := State{}
	var nodes []Node
	for i := range lines {
		var emitted []Node
		st, emitted = step(st, lines, i)
		nodes = append(nodes, emitted...)
	}
	return nodes
}

// step 处理第i行，返回新状态和产出的节点。
// 规则自上而下求值，首个命中者生效
func step(st State, lines []string, i int) (State, []Node) {
	line := strings.TrimSpace(lines[i])

	// 空行不改变状态也不产出节点，选项区允许被空行分隔
	if line == "" {
		return st, nil
	}

	// 标题行
	if level, text, ok := matchHeading(line); ok {
		return State{}, []Node{{Kind: KindHeading, Level: level, Text: text}}
	}

	// 选项区起始标签
	if strings.Contains(line, OptionsMarker) {
		node := Node{Kind: KindOptionsStart, Label: "选项："}
		if m := boldLabelRe.FindStringSubmatch(line); m != nil {
			node.Label = m[1]
			node.Segments = ParseInline(m[2])
		}
		return State{InOptionsBlock: true}, []Node{node}
	}

	// 字母选项。状态不在选项区时回溯窗口内找选项标签，
	// 容忍标签和首个选项不相邻的畸形输入
	if m := checkboxRe.FindStringSubmatch(line); m != nil {
		content := strings.TrimSpace(m[2])
		if st.InOptionsBlock || markerWithinLookBack(lines, i) {
			node := Node{
				Kind:     KindOption,
				Letter:   byte('A' + st.OptionIndex),
				Correct:  m[1] == "x" || m[1] == "X",
				Segments: ParseInline(content),
			}
			return State{InOptionsBlock: true, OptionIndex: st.OptionIndex + 1}, []Node{node}
		}
		// 游离的复选框语法退化为普通列表项
		return st, []Node{{Kind: KindListItem, Text: content}}
	}

	// 非选项内容行终结选项区，当前行继续按后续规则分类
	st = State{}

	if strings.HasPrefix(line, "**") {
		if m := boldLabelRe.FindStringSubmatch(line); m != nil {
			return st, []Node{{Kind: KindBoldLabel, Label: m[1], Segments: ParseInline(m[2])}}
		}
		// 未闭合的加粗语法按普通文本处理
		return st, []Node{{Kind: KindText, Segments: ParseInline(line)}}
	}

	if strings.HasPrefix(line, "- ") {
		return st, []Node{{Kind: KindListItem, Text: strings.TrimSpace(line[2:])}}
	}

	if isRuleLine(line) {
		return State{}, []Node{{Kind: KindRule}}
	}

	return st, []Node{{Kind: KindText, Segments: ParseInline(line)}}
}

func matchHeading(line string) (int, string, bool) {
	switch {
	case strings.HasPrefix(line, "### "):
		return 3, strings.TrimSpace(line[4:]), true
	case strings.HasPrefix(line, "## "):
		return 2, strings.TrimSpace(line[3:]), true
	case strings.HasPrefix(line, "# "):
		return 1, strings.TrimSpace(line[2:]), true
	}
	return 0, "", false
}

func isRuleLine(line string) bool {
	if len(line) < 3 {
		return false
	}
	for _, r := range line {
		if r != '-' {
			return false
		}
	}
	return true
}

// markerWithinLookBack 在回溯窗口内查找选项标签。
// 窗口内只允许空行和其他选项行，遇到任何其他内容立即停止，
// 保证已被正文打断的选项区不会被错误续上
func markerWithinLookBack(lines []string, i int) bool {
	for back := 1; back <= lookBackWindow && i-back >= 0; back++ {
		prev := strings.TrimSpace(lines[i-back])
		if prev == "" {
			continue
		}
		if strings.Contains(prev, OptionsMarker) {
			return true
		}
		if checkboxRe.MatchString(prev) {
			continue
		}
		return false
	}
	return false
}

// ParseInline 将一行内容切分为文本与图片交替的片段
func ParseInline(content string) []Segment {
	if content == "" {
		return nil
	}
	locs := imageRe.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return []Segment{{Text: content}}
	}

	var segs []Segment
	pos := 0
	for _, loc := range locs {
		if text := strings.TrimSpace(content[pos:loc[0]]); text != "" {
			segs = append(segs, Segment{Text: text})
		}
		segs = append(segs, Segment{Image: &ImageRef{
			Alt: content[loc[2]:loc[3]],
			URL: content[loc[4]:loc[5]],
		}})
		pos = loc[1]
	}
	if text := strings.TrimSpace(content[pos:]); text != "" {
		segs = append(segs, Segment{Text: text})
	}
	return segs
}
