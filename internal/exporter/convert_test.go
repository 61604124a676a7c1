package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMarkdown = `# 第1周测验

### 1. 单选题

**题目：** 题干

**选项：**

- [ ] 甲
- [x] 乙

---
`

func writeMarkdown(t *testing.T, dir, course, name string) string {
	t.Helper()
	courseDir := filepath.Join(dir, course)
	require.NoError(t, os.MkdirAll(courseDir, 0755))
	path := filepath.Join(courseDir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleMarkdown), 0644))
	return path
}

func TestScanMarkdownCourses(t *testing.T) {
	mdDir := t.TempDir()
	writeMarkdown(t, mdDir, "数据结构", "quiz_第1周测验.md")
	writeMarkdown(t, mdDir, "数据结构", "quiz_第2周测验.md")
	require.NoError(t, os.WriteFile(filepath.Join(mdDir, "数据结构", "notes.txt"), []byte("x"), 0644))

	courses, err := ScanMarkdownCourses(mdDir)
	require.NoError(t, err)
	require.Contains(t, courses, "数据结构")
	require.Len(t, courses["数据结构"], 2)
	// 文件名排序
	assert.Equal(t, "quiz_第1周测验.md", filepath.Base(courses["数据结构"][0]))
}

func TestConvertCourseToDocx(t *testing.T) {
	mdDir := t.TempDir()
	outDir := t.TempDir()
	mdPath := writeMarkdown(t, mdDir, "数据结构", "quiz_第1周测验.md")

	counts := ConvertCourseToDocx("数据结构", []string{mdPath}, outDir, nil)
	assert.Equal(t, Counts{Exported: 1}, counts)

	target := filepath.Join(outDir, "数据结构", "quiz_第1周测验.docx")
	assert.FileExists(t, target)

	// 重跑跳过
	counts = ConvertCourseToDocx("数据结构", []string{mdPath}, outDir, nil)
	assert.Equal(t, Counts{Skipped: 1}, counts)
}

func TestConvertCourseToDocxCountsErrors(t *testing.T) {
	counts := ConvertCourseToDocx("课程", []string{filepath.Join(t.TempDir(), "没有.md")}, t.TempDir(), nil)
	assert.Equal(t, Counts{Errors: 1}, counts)
}
