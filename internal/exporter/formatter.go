package exporter

import (
	"fmt"
	"strings"

	"github.com/kingpoem/moocscript/internal/model"
)

// FormatQuestion 将一道题目格式化为以分隔线结尾的标记文本块。
// 输出是确定性的：同一条记录两次格式化产出逐字节相同的文本。
// 字段缺失一律跳过对应小节，不报错
func FormatQuestion(q model.Question, ordinal int) string {
	var b strings.Builder

	label := model.TypeLabel(q.Type)
	if q.Kind == model.KindSubjective && q.Type == 0 {
		label = "主观题"
	}
	fmt.Fprintf(&b, "### %d. %s\n\n", ordinal, label)
	fmt.Fprintf(&b, "**题目：** %s\n\n", CleanHTML(q.Title))

	if q.Kind == model.KindSubjective {
		formatSubjective(&b, q)
	} else {
		formatObjective(&b, q)
	}

	b.WriteString("---\n\n")
	return b.String()
}

func formatObjective(b *strings.Builder, q model.Question) {
	if len(q.Options) > 0 {
		b.WriteString("**选项：**\n\n")
		for _, opt := range q.Options {
			mark := " "
			if opt.IsCorrect {
				mark = "x"
			}
			fmt.Fprintf(b, "- [%s] %s\n", mark, CleanHTML(opt.Content))
		}
		b.WriteString("\n")
	}

	if q.StandardAnswer != "" {
		fmt.Fprintf(b, "**标准答案：** %s\n\n", CleanHTML(q.StandardAnswer))
	}
	if q.Analysis != "" {
		fmt.Fprintf(b, "**解析：** %s\n\n", CleanHTML(q.Analysis))
	}

	var correct []string
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct = append(correct, CleanHTML(opt.Content))
		}
	}
	if len(correct) > 0 {
		fmt.Fprintf(b, "**正确答案：** %s\n\n", strings.Join(correct, ", "))
	}
}

func formatSubjective(b *strings.Builder, q model.Question) {
	if q.SampleAnswer != "" {
		fmt.Fprintf(b, "**参考答案：** %s\n\n", CleanHTML(q.SampleAnswer))
	}
	if len(q.GradingCriteria) > 0 {
		b.WriteString("**评分标准：**\n\n")
		for _, rule := range q.GradingCriteria {
			fmt.Fprintf(b, "- %s\n", CleanHTML(rule))
		}
		b.WriteString("\n")
	}
	if q.Analysis != "" {
		fmt.Fprintf(b, "**解析：** %s\n\n", CleanHTML(q.Analysis))
	}
}

// FormatPaper 将整份试卷格式化为一篇标记文档：
// 课程/章节标签和题目总数统计开头，选择题与主观题分节，
// 题号跨节连续编号
func FormatPaper(p *model.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if p.CourseName != "" {
		fmt.Fprintf(&b, "**课程：** %s\n", p.CourseName)
	}
	if p.ChapterName != "" {
		fmt.Fprintf(&b, "**章节：** %s\n", p.ChapterName)
	}
	b.WriteString("\n---\n\n")

	objective := 0
	for _, q := range p.Questions {
		if q.Kind != model.KindSubjective {
			objective++
		}
	}
	subjective := len(p.Questions) - objective
	fmt.Fprintf(&b, "**题目总数：** %d (选择题: %d, 主观题: %d)\n\n---\n\n",
		len(p.Questions), objective, subjective)

	wroteObjective, wroteSubjective := false, false
	for i, q := range p.Questions {
		if q.Kind == model.KindSubjective {
			if !wroteSubjective {
				b.WriteString("## 主观题\n\n")
				wroteSubjective = true
			}
		} else if !wroteObjective {
			b.WriteString("## 选择题\n\n")
			wroteObjective = true
		}
		b.WriteString(FormatQuestion(q, i+1))
	}
	return b.String()
}
