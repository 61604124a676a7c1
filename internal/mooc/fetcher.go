package mooc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/kingpoem/moocscript/internal/model"
	"github.com/kingpoem/moocscript/pkg/logger"
	"github.com/kingpoem/moocscript/pkg/util"
)

// Course 课程列表里的一项
type Course struct {
	Name   string
	ID     int64
	TermID int64
}

// Stats 抓取过程统计
type Stats struct {
	Courses         int
	Quizzes         int
	ExamsObjective  int
	ExamsSubjective int
	Homeworks       int
	Skipped         int
	Errors          int
}

// Fetcher 按课程抓取试卷JSON并落盘
type Fetcher struct {
	client  *Client
	jsonDir string

	Stats     Stats
	summaries []model.CourseSummary
}

// NewFetcher 创建抓取器，JSON落盘到outputDir/json下
func NewFetcher(client *Client, outputDir string) *Fetcher {
	return &Fetcher{client: client, jsonDir: filepath.Join(outputDir, "json")}
}

// FetchAllCourses 翻页取回全部课程
func (f *Fetcher) FetchAllCourses(ctx context.Context, pageSize int) ([]Course, error) {
	var courses []Course
	page := 1

	fmt.Println("Fetching course list...")
	for {
		if err := ctx.Err(); err != nil {
			return courses, err
		}
		result := f.client.CourseList(ctx, page, pageSize)
		if !result.OK() {
			fmt.Printf("Failed to get course list: %s\n", result.Status.Message)
			break
		}

		pageCourses := result.Results.Get("result").Array()
		if len(pageCourses) == 0 {
			break
		}
		for _, c := range pageCourses {
			courses = append(courses, Course{
				Name:   c.Get("name").String(),
				ID:     c.Get("id").Int(),
				TermID: c.Get("termPanel.id").Int(),
			})
		}

		totalPages := int(result.Results.Get("pagination.totlePageCount").Int())
		if totalPages < 1 {
			totalPages = 1
		}
		fmt.Printf("  Page %d/%d: Found %d courses\n", page, totalPages, len(pageCourses))
		if page >= totalPages {
			break
		}
		page++
	}

	fmt.Printf("Total courses: %d\n", len(courses))
	return courses, nil
}

// FetchCourses 逐门抓取所选课程的全部试卷
func (f *Fetcher) FetchCourses(ctx context.Context, courses []Course) error {
	for i, course := range courses {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Printf("\n%s\n", strings.Repeat("=", 60))
		fmt.Printf("Course %d/%d: %s\n", i+1, len(courses), course.Name)
		fmt.Println(strings.Repeat("=", 60))

		info := f.client.CourseInfo(ctx, course.ID, course.TermID)
		if !info.OK() {
			fmt.Printf("  Failed to get course info for %s: %s\n", course.Name, info.Status.Message)
			f.Stats.Errors++
			continue
		}

		f.fetchCoursePapers(ctx, course, info.Results)
		f.Stats.Courses++
	}
	return nil
}

// fetchCoursePapers 遍历章节抓取测验、考试和作业
func (f *Fetcher) fetchCoursePapers(ctx context.Context, course Course, info gjson.Result) {
	chapters := info.Get("termDto.chapters").Array()
	fmt.Printf("\nProcessing course: %s\n", course.Name)
	fmt.Printf("  Chapters: %d\n", len(chapters))

	papers := map[model.PaperType]int{}
	for _, chapter := range chapters {
		if ctx.Err() != nil {
			return
		}

		for _, quiz := range chapter.Get("quizs").Array() {
			name := quiz.Get("name").String()
			contentID := quiz.Get("contentId").Int()
			if contentID == 0 {
				continue
			}
			fmt.Printf("  Fetching quiz: %s (ID: %d)\n", name, contentID)
			if f.fetchAndSave(ctx, course.Name, name, contentID, model.PaperQuiz) {
				f.Stats.Quizzes++
				papers[model.PaperQuiz]++
			}
		}

		exam := chapter.Get("exam")
		if objective := exam.Get("objectTestVo"); objective.IsObject() {
			name := objective.Get("name").String()
			if name == "" {
				name = "客观题考试"
			}
			if id := objective.Get("id").Int(); id != 0 {
				fmt.Printf("  Fetching objective exam: %s (ID: %d)\n", name, id)
				if f.fetchAndSave(ctx, course.Name, name, id, model.PaperExamObjective) {
					f.Stats.ExamsObjective++
					papers[model.PaperExamObjective]++
				}
			}
		}
		if subjective := exam.Get("subjectTestVo"); subjective.IsObject() {
			name := subjective.Get("name").String()
			if name == "" {
				name = "主观题考试"
			}
			if id := subjective.Get("id").Int(); id != 0 {
				fmt.Printf("  Fetching subjective exam: %s (ID: %d)\n", name, id)
				if f.fetchAndSave(ctx, course.Name, name, id, model.PaperExamSubjective) {
					f.Stats.ExamsSubjective++
					papers[model.PaperExamSubjective]++
				}
			}
		}

		for _, homework := range chapter.Get("homeworks").Array() {
			name := homework.Get("name").String()
			contentID := homework.Get("contentId").Int()
			if contentID == 0 {
				continue
			}
			fmt.Printf("  Fetching homework: %s (ID: %d)\n", name, contentID)
			if f.fetchAndSave(ctx, course.Name, name, contentID, model.PaperHomework) {
				f.Stats.Homeworks++
				papers[model.PaperHomework]++
			}
		}
	}

	f.summaries = append(f.summaries, model.CourseSummary{
		Name:     course.Name,
		CourseID: course.ID,
		Papers: map[string]int{
			string(model.PaperQuiz):           papers[model.PaperQuiz],
			string(model.PaperExamObjective):  papers[model.PaperExamObjective],
			string(model.PaperExamSubjective): papers[model.PaperExamSubjective],
			string(model.PaperHomework):       papers[model.PaperHomework],
		},
	})
}

// fetchAndSave 抓取一份试卷并保存原始响应。
// 已存在的文件直接跳过，不再请求接口
func (f *Fetcher) fetchAndSave(ctx context.Context, courseName, paperName string, testID int64, paperType model.PaperType) bool {
	path := f.paperPath(courseName, paperName, testID, paperType)
	if util.FileExists(path) {
		f.Stats.Skipped++
		return true
	}

	result := f.client.PaperDetail(ctx, testID)
	if !result.OK() {
		fmt.Printf("    Failed to fetch %s: %s\n", paperName, result.Status.Message)
		f.Stats.Errors++
		return false
	}

	// 响应里的testId优先于请求用的contentId
	if respID := result.Results.Get("mocPaperDto.testId").Int(); respID != 0 && respID != testID {
		path = f.paperPath(courseName, paperName, respID, paperType)
		if util.FileExists(path) {
			f.Stats.Skipped++
			return true
		}
	}

	if err := util.SaveFile(path, result.Raw); err != nil {
		logger.Error("保存试卷JSON失败", logger.F("file", path), logger.F("err", err))
		fmt.Printf("    Error saving %s: %v\n", paperName, err)
		f.Stats.Errors++
		return false
	}
	return true
}

func (f *Fetcher) paperPath(courseName, paperName string, testID int64, paperType model.PaperType) string {
	courseDir := filepath.Join(f.jsonDir, util.SanitizeFilename(courseName))
	filename := fmt.Sprintf("%s_%s_%d.json", paperType, util.SanitizeFilename(paperName), testID)
	return filepath.Join(courseDir, filename)
}

// PrintStats 打印抓取统计
func (f *Fetcher) PrintStats() {
	fmt.Printf("\n%s\n", strings.Repeat("=", 60))
	fmt.Println("Fetching Statistics")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("  Courses processed: %d\n", f.Stats.Courses)
	fmt.Printf("  Quizzes fetched: %d\n", f.Stats.Quizzes)
	fmt.Printf("  Objective exams fetched: %d\n", f.Stats.ExamsObjective)
	fmt.Printf("  Subjective exams fetched: %d\n", f.Stats.ExamsSubjective)
	fmt.Printf("  Homeworks fetched: %d\n", f.Stats.Homeworks)
	if f.Stats.Skipped > 0 {
		fmt.Printf("  Papers skipped: %d (already exist)\n", f.Stats.Skipped)
	}
	fmt.Printf("  Errors: %d\n", f.Stats.Errors)
	fmt.Println(strings.Repeat("=", 60))
}

// BuildSummary 汇总本次抓取结果
func (f *Fetcher) BuildSummary() *model.Summary {
	return &model.Summary{
		TotalCourses:         f.Stats.Courses,
		TotalQuizzes:         f.Stats.Quizzes,
		TotalExamsObjective:  f.Stats.ExamsObjective,
		TotalExamsSubjective: f.Stats.ExamsSubjective,
		TotalHomeworks:       f.Stats.Homeworks,
		TotalErrors:          f.Stats.Errors,
		Courses:              f.summaries,
	}
}

// WriteSummary 把汇总写入json/summary.json
func (f *Fetcher) WriteSummary() (string, error) {
	summary := f.BuildSummary()
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(f.jsonDir, "summary.json")
	if err := util.SaveFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// SaveSelectedCourses 记录本次选中的课程名，供转换阶段过滤
func SaveSelectedCourses(outputDir string, courses []Course) error {
	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, c.Name)
	}
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return err
	}
	return util.SaveFile(filepath.Join(outputDir, "json", "selected_courses.json"), data)
}

// LoadCourseNames 读取JSON文件里的课程名列表（--courses-file），
// 文件读不到或格式错误时提示后返回空列表，不中断流程
func LoadCourseNames(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to load courses file: %v\n", err)
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		fmt.Printf("Failed to load courses file: %v\n", err)
		return nil
	}
	return names
}

// LoadSelectedCourses 读取上次选中的课程名，文件不存在时返回空列表
func LoadSelectedCourses(outputDir string) []string {
	data, err := os.ReadFile(filepath.Join(outputDir, "json", "selected_courses.json"))
	if err != nil {
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		logger.Warn("解析selected_courses.json失败", logger.F("err", err))
		return nil
	}
	return names
}
