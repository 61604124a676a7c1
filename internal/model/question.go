package model

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// QuestionKind 题目类别
type QuestionKind string

const (
	KindObjective  QuestionKind = "objective"  // 客观题
	KindSubjective QuestionKind = "subjective" // 主观题
)

// 题型编码，与平台接口一致
const (
	TypeSingleChoice = 1 // 单选题
	TypeMultiChoice  = 2 // 多选题
	TypeTrueFalse    = 3 // 判断题
	TypeFillBlank    = 4 // 填空题
	TypeShortAnswer  = 5 // 简答题
)

// TypeLabel 题型中文名，未知题型回退为"题型{n}"
func TypeLabel(t int) string {
	switch t {
	case TypeSingleChoice:
		return "单选题"
	case TypeMultiChoice:
		return "多选题"
	case TypeTrueFalse:
		return "判断题"
	case TypeFillBlank:
		return "填空题"
	case TypeShortAnswer:
		return "简答题"
	default:
		return fmt.Sprintf("题型%d", t)
	}
}

// Option 客观题选项。顺序即字母顺序，字母按位置分配
type Option struct {
	Content   string `json:"content"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question 一道题目的规整结构。缺失字段统一为零值，遍历前无需再判空
type Question struct {
	Kind            QuestionKind `json:"kind"`
	Type            int          `json:"type"`
	Title           string       `json:"title"`
	Options         []Option     `json:"options,omitempty"`
	StandardAnswer  string       `json:"standardAnswer,omitempty"`
	Analysis        string       `json:"analysis,omitempty"`
	SampleAnswer    string       `json:"sampleAnswer,omitempty"`
	GradingCriteria []string     `json:"gradingCriteria,omitempty"`
}

// ParseQuestion 从接口JSON解析单道题目。
// 平台字段命名不稳定，这里集中做所有兼容取值和缺省处理
func ParseQuestion(j gjson.Result, kind QuestionKind) Question {
	q := Question{
		Kind:  kind,
		Type:  int(firstInt(j, "type", "questionType")),
		Title: firstString(j, "title", "name"),
	}

	optList := firstArray(j, "optionDtos", "options")
	for _, o := range optList {
		q.Options = append(q.Options, Option{
			Content:   firstString(o, "content", "text"),
			IsCorrect: o.Get("answer").Bool() || o.Get("isCorrect").Bool(),
		})
	}

	q.StandardAnswer = firstString(j, "stdAnswer", "standardAnswer")
	q.Analysis = firstString(j, "analyse", "analysis")
	q.SampleAnswer = firstString(j, "sampleAnswers", "sampleAnswer")

	// 评分标准是judgeDtos对象数组，msg为条目文本
	for _, r := range firstArray(j, "judgeDtos", "scoreRules") {
		if r.IsObject() {
			if msg := firstString(r, "msg", "desc"); msg != "" {
				q.GradingCriteria = append(q.GradingCriteria, msg)
			}
		} else if r.String() != "" {
			q.GradingCriteria = append(q.GradingCriteria, r.String())
		}
	}

	// 类别未明确时按有无选项判定
	if q.Kind == "" {
		if len(q.Options) > 0 {
			q.Kind = KindObjective
		} else {
			q.Kind = KindSubjective
		}
	}
	return q
}

func firstString(j gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := j.Get(k); v.Exists() {
			return v.String()
		}
	}
	return ""
}

func firstInt(j gjson.Result, keys ...string) int64 {
	for _, k := range keys {
		if v := j.Get(k); v.Exists() {
			return v.Int()
		}
	}
	return 0
}

// firstArray 取第一个存在且为数组的字段，绝不返回非数组值
func firstArray(j gjson.Result, keys ...string) []gjson.Result {
	for _, k := range keys {
		if v := j.Get(k); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}
