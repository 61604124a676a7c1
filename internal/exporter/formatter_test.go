package exporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingpoem/moocscript/internal/model"
	"github.com/kingpoem/moocscript/pkg/markup"
)

func TestFormatObjectiveQuestion(t *testing.T) {
	q := model.Question{
		Kind:  model.KindObjective,
		Type:  model.TypeSingleChoice,
		Title: "<p>下列说法正确的是</p>",
		Options: []model.Option{
			{Content: "甲"},
			{Content: "乙", IsCorrect: true},
			{Content: "丙"},
		},
		StandardAnswer: "B",
		Analysis:       "见教材第3章",
	}

	out := FormatQuestion(q, 1)
	assert.Contains(t, out, "### 1. 单选题\n\n")
	assert.Contains(t, out, "**题目：** 下列说法正确的是\n\n")
	assert.Contains(t, out, "**选项：**\n\n")
	assert.Contains(t, out, "- [ ] 甲\n")
	assert.Contains(t, out, "- [x] 乙\n")
	assert.Contains(t, out, "**标准答案：** B\n\n")
	assert.Contains(t, out, "**解析：** 见教材第3章\n\n")
	assert.Contains(t, out, "**正确答案：** 乙\n\n")
	assert.True(t, strings.HasSuffix(out, "---\n\n"))
}

func TestFormatMultiCorrectJoins(t *testing.T) {
	q := model.Question{
		Kind: model.KindObjective,
		Type: model.TypeMultiChoice,
		Options: []model.Option{
			{Content: "甲", IsCorrect: true},
			{Content: "乙"},
			{Content: "丙", IsCorrect: true},
		},
	}
	assert.Contains(t, FormatQuestion(q, 2), "**正确答案：** 甲, 丙\n\n")
}

func TestFormatSubjectiveQuestion(t *testing.T) {
	q := model.Question{
		Kind:            model.KindSubjective,
		Type:            model.TypeShortAnswer,
		Title:           "简述数据库事务的ACID特性",
		SampleAnswer:    "原子性、一致性、隔离性、持久性",
		GradingCriteria: []string{"每个特性2分", "有说明加2分"},
	}

	out := FormatQuestion(q, 3)
	assert.Contains(t, out, "**参考答案：** 原子性、一致性、隔离性、持久性\n\n")
	assert.Contains(t, out, "**评分标准：**\n\n- 每个特性2分\n- 有说明加2分\n\n")
	assert.NotContains(t, out, "**选项：**")
}

// 缺失字段只是跳过对应小节
func TestFormatMissingFields(t *testing.T) {
	out := FormatQuestion(model.Question{Kind: model.KindObjective, Type: 99}, 4)
	assert.Contains(t, out, "### 4. 题型99\n\n")
	assert.NotContains(t, out, "**标准答案：**")
	assert.NotContains(t, out, "**正确答案：**")
}

// 两次格式化逐字节一致
func TestFormatDeterministic(t *testing.T) {
	q := model.Question{
		Kind:    model.KindObjective,
		Type:    model.TypeTrueFalse,
		Title:   "Go是编译型语言",
		Options: []model.Option{{Content: "对", IsCorrect: true}, {Content: "错"}},
	}
	assert.Equal(t, FormatQuestion(q, 1), FormatQuestion(q, 1))
}

// 文档头带课程/章节标签和题目统计，客观题与主观题分节，题号连续
func TestFormatPaperHeader(t *testing.T) {
	p := &model.Paper{
		Type:        model.PaperQuiz,
		Name:        "第1周测验",
		CourseName:  "数据结构",
		ChapterName: "第一章",
		Questions: []model.Question{
			{Kind: model.KindObjective, Type: model.TypeSingleChoice, Title: "客观1"},
			{Kind: model.KindObjective, Type: model.TypeTrueFalse, Title: "客观2"},
			{Kind: model.KindSubjective, Type: model.TypeShortAnswer, Title: "主观1"},
		},
	}

	out := FormatPaper(p)
	assert.True(t, strings.HasPrefix(out, "# 第1周测验\n\n"))
	assert.Contains(t, out, "**课程：** 数据结构\n")
	assert.Contains(t, out, "**章节：** 第一章\n")
	assert.Contains(t, out, "**题目总数：** 3 (选择题: 2, 主观题: 1)\n\n---\n\n")
	assert.Contains(t, out, "## 选择题\n\n")
	assert.Contains(t, out, "## 主观题\n\n")

	// 主观题编号接着客观题继续
	assert.Contains(t, out, "### 3. 简答题")

	// 分节标题各出现一次
	assert.Equal(t, 1, strings.Count(out, "## 选择题"))
	assert.Equal(t, 1, strings.Count(out, "## 主观题"))
}

// 没有课程/章节信息时标签小节省略，统计行仍在
func TestFormatPaperBareHeader(t *testing.T) {
	out := FormatPaper(&model.Paper{Type: model.PaperQuiz, Name: "测验"})
	assert.NotContains(t, out, "**课程：**")
	assert.NotContains(t, out, "**章节：**")
	assert.Contains(t, out, "**题目总数：** 0 (选择题: 0, 主观题: 0)")
}

// 格式化产物经分类器往返，选项数量、字母与正误标记保持一致
func TestFormatClassifyRoundTrip(t *testing.T) {
	p := &model.Paper{
		Type: model.PaperQuiz,
		Name: "第1周测验",
		Questions: []model.Question{
			{
				Kind: model.KindObjective,
				Type: model.TypeSingleChoice,
				Options: []model.Option{
					{Content: "甲"},
					{Content: "乙", IsCorrect: true},
					{Content: "丙"},
					{Content: "丁"},
				},
			},
		},
	}

	nodes := markup.Classify(FormatPaper(p))

	var options []markup.Node
	for _, n := range nodes {
		if n.Kind == markup.KindOption {
			options = append(options, n)
		}
	}
	require.Len(t, options, 4)
	for i, opt := range options {
		assert.Equal(t, byte('A'+i), opt.Letter)
		assert.Equal(t, i == 1, opt.Correct)
	}
}

func TestCleanHTML(t *testing.T) {
	assert.Equal(t, "AB", CleanHTML("A\u200bB"))
	assert.Equal(t, "AB", CleanHTML("A\ufeffB"))
	assert.Equal(t, "a b", CleanHTML("<p>a</p><p>b</p>"))
	assert.Equal(t, "1 < 2", CleanHTML("1 &lt; 2"))
	assert.Equal(t, "前 后", CleanHTML("前 　后"))
	assert.Equal(t, "", CleanHTML(""))

	img := CleanHTML(`文字<img src="http://e.com/a.png" width="20">结尾`)
	assert.Equal(t, "文字 ![图片](http://e.com/a.png) 结尾", img)
}
