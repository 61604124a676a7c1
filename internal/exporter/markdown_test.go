package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingpoem/moocscript/internal/model"
)

func writePaperJSON(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const quizJSON = `{
  "status": {"code": 0, "message": "success"},
  "results": {"mocPaperDto": {
    "name": "第1周测验",
    "testId": 101,
    "objectiveQList": [
      {"type": 1, "title": "题干", "optionDtos": [
        {"content": "甲", "answer": true},
        {"content": "乙", "answer": false}
      ]}
    ]
  }}
}`

func TestScanCourses(t *testing.T) {
	jsonDir := t.TempDir()
	courseDir := filepath.Join(jsonDir, "数据结构")
	writePaperJSON(t, courseDir, "quiz_第1周测验_101.json", quizJSON)
	writePaperJSON(t, courseDir, "exam_objective_期末考试_202.json", quizJSON)
	writePaperJSON(t, courseDir, "summary.json", `{"total_courses":1}`)
	writePaperJSON(t, courseDir, "不认识的前缀_x.json", quizJSON)
	writePaperJSON(t, courseDir, "quiz_坏文件_103.json", `{invalid`)

	courses, err := ScanCourses(jsonDir)
	require.NoError(t, err)
	require.Contains(t, courses, "数据结构")

	papers := courses["数据结构"]
	require.Len(t, papers[model.PaperQuiz], 1)
	require.Len(t, papers[model.PaperExamObjective], 1)

	// 数字ID从文件名剥掉
	assert.Equal(t, "第1周测验", papers[model.PaperQuiz][0].Name)
	assert.Equal(t, "期末考试", papers[model.PaperExamObjective][0].Name)
}

func TestExportCourseToMarkdown(t *testing.T) {
	jsonDir := t.TempDir()
	outDir := t.TempDir()
	courseDir := filepath.Join(jsonDir, "数据结构")
	writePaperJSON(t, courseDir, "quiz_第1周测验_101.json", quizJSON)

	courses, err := ScanCourses(jsonDir)
	require.NoError(t, err)

	counts, err := ExportCourseToMarkdown(courses["数据结构"], outDir, "数据结构")
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Exported)
	assert.Equal(t, 0, counts.Skipped)

	// 文件名用中文类别前缀
	target := filepath.Join(outDir, "数据结构", "测验_第1周测验.md")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# 第1周测验")
	assert.Contains(t, string(data), "**课程：** 数据结构")
	assert.Contains(t, string(data), "- [x] 甲")

	merged := filepath.Join(outDir, "数据结构", "数据结构_完整版.md")
	assert.FileExists(t, merged)
	mergedData, err := os.ReadFile(merged)
	require.NoError(t, err)
	assert.Contains(t, string(mergedData), "# 数据结构 - 完整版")

	// 重跑全部跳过，文件不被覆盖
	before, _ := os.ReadFile(target)
	counts, err = ExportCourseToMarkdown(courses["数据结构"], outDir, "数据结构")
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Exported)
	assert.Equal(t, 1, counts.Skipped)
	after, _ := os.ReadFile(target)
	assert.Equal(t, before, after)
}

func TestExportSanitizesCourseName(t *testing.T) {
	jsonDir := t.TempDir()
	outDir := t.TempDir()
	writePaperJSON(t, filepath.Join(jsonDir, "raw"), "quiz_测验_1.json", quizJSON)

	courses, err := ScanCourses(jsonDir)
	require.NoError(t, err)

	_, err = ExportCourseToMarkdown(courses["raw"], outDir, "Intro/Data:Science")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(outDir, "Intro_Data_Science"))
}

func TestPaperTypeFilePrefix(t *testing.T) {
	assert.Equal(t, "测验", model.PaperQuiz.FilePrefix())
	assert.Equal(t, "客观题考试", model.PaperExamObjective.FilePrefix())
	assert.Equal(t, "主观题考试", model.PaperExamSubjective.FilePrefix())
	assert.Equal(t, "作业", model.PaperHomework.FilePrefix())
	assert.Equal(t, "other", model.PaperType("other").FilePrefix())
}

func TestCountsAdd(t *testing.T) {
	total := Counts{Exported: 1}
	total.Add(Counts{Exported: 2, Skipped: 3, Errors: 1})
	assert.Equal(t, Counts{Exported: 3, Skipped: 3, Errors: 1}, total)
}
