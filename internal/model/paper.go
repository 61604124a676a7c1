package model

import "github.com/tidwall/gjson"

// PaperType 试卷类别，同时是落盘文件名前缀
type PaperType string

const (
	PaperQuiz           PaperType = "quiz"
	PaperExamObjective  PaperType = "exam_objective"
	PaperExamSubjective PaperType = "exam_subjective"
	PaperHomework       PaperType = "homework"
)

// PaperTypes 固定的类别遍历顺序
var PaperTypes = []PaperType{PaperQuiz, PaperExamObjective, PaperExamSubjective, PaperHomework}

var paperFilePrefixes = map[PaperType]string{
	PaperQuiz:           "测验",
	PaperExamObjective:  "客观题考试",
	PaperExamSubjective: "主观题考试",
	PaperHomework:       "作业",
}

// FilePrefix 导出文档的中文文件名前缀，类别不认识时原样返回
func (t PaperType) FilePrefix() string {
	if p, ok := paperFilePrefixes[t]; ok {
		return p
	}
	return string(t)
}

// Paper 一份试卷（测验/考试/作业）
type Paper struct {
	Type        PaperType  `json:"type"`
	Name        string     `json:"name"`
	CourseName  string     `json:"courseName,omitempty"`
	ChapterName string     `json:"chapterName,omitempty"`
	ID          int64      `json:"id"`
	Questions   []Question `json:"questions"`
}

// ParsePaper 从落盘的试卷JSON解析题目列表。
// 落盘文件是完整的接口响应，题目在results.mocPaperDto下；
// 也接受直接传入mocPaperDto本身。客观题和主观题分列两个数组
func ParsePaper(data []byte, paperType PaperType) *Paper {
	j := gjson.ParseBytes(data)
	if dto := j.Get("results.mocPaperDto"); dto.IsObject() {
		j = dto
	}

	p := &Paper{Type: paperType}
	p.Name = firstString(j, "name", "title")
	p.ID = firstInt(j, "testId", "id", "contentId")
	p.ChapterName = firstString(j, "chapterName")

	for _, q := range firstArray(j, "objectiveQList") {
		p.Questions = append(p.Questions, ParseQuestion(q, KindObjective))
	}
	for _, q := range firstArray(j, "subjectiveQList") {
		p.Questions = append(p.Questions, ParseQuestion(q, KindSubjective))
	}
	if len(p.Questions) == 0 {
		for _, q := range firstArray(j, "questions", "questionList") {
			p.Questions = append(p.Questions, ParseQuestion(q, ""))
		}
	}
	return p
}

// Status 接口响应状态。code为0表示成功，-1表示本地传输失败
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Result 接口响应封装
type Result struct {
	Status  Status `json:"status"`
	Results gjson.Result
	Raw     []byte
}

// OK 响应是否成功
func (r *Result) OK() bool {
	return r != nil && r.Status.Code == 0
}

// Summary 抓取汇总统计，原样写入summary.json
type Summary struct {
	TotalCourses         int             `json:"total_courses"`
	TotalQuizzes         int             `json:"total_quizzes"`
	TotalExamsObjective  int             `json:"total_exams_objective"`
	TotalExamsSubjective int             `json:"total_exams_subjective"`
	TotalHomeworks       int             `json:"total_homeworks"`
	TotalErrors          int             `json:"total_errors"`
	Courses              []CourseSummary `json:"courses"`
}

// CourseSummary 单门课程的试卷数量统计
type CourseSummary struct {
	Name     string         `json:"name"`
	CourseID int64          `json:"course_id"`
	Papers   map[string]int `json:"papers"`
}
