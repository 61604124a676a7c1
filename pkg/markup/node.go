package markup

// Kind 节点类型
type Kind int

const (
	KindHeading      Kind = iota // 标题行
	KindBoldLabel                // **标签：** 开头的行
	KindOptionsStart             // 选项区起始标签行
	KindOption                   // 字母选项行
	KindListItem                 // 普通列表项
	KindText                     // 普通文本行
	KindRule                     // 水平分隔线
)

// ImageRef 行内图片引用
type ImageRef struct {
	Alt string
	URL string
}

// Segment 一段行内内容，文本或图片二选一
type Segment struct {
	Text  string
	Image *ImageRef
}

// Node 分类产出的规范节点
type Node struct {
	Kind     Kind
	Level    int       // 标题级别 1-3
	Text     string    // 标题/列表项文本
	Label    string    // 加粗标签文本（含冒号）
	Segments []Segment // 标签后续内容、普通行内容或选项内容
	Letter   byte      // 选项字母，按位置分配
	Correct  bool      // 是否正确选项
}

// HasImage 节点内容是否包含图片引用
func (n Node) HasImage() bool {
	for _, s := range n.Segments {
		if s.Image != nil {
			return true
		}
	}
	return false
}

// OnlyImages 节点内容是否只有图片引用、没有任何文本
func (n Node) OnlyImages() bool {
	found := false
	for _, s := range n.Segments {
		if s.Image != nil {
			found = true
		} else if s.Text != "" {
			return false
		}
	}
	return found
}

// PlainText 拼接节点的纯文本内容，图片引用忽略
func (n Node) PlainText() string {
	out := ""
	for _, s := range n.Segments {
		out += s.Text
	}
	return out
}
