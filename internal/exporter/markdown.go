package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/kingpoem/moocscript/internal/model"
	"github.com/kingpoem/moocscript/pkg/logger"
	"github.com/kingpoem/moocscript/pkg/util"
)

// PaperFile 磁盘上的一份试卷JSON及其解析出的描述信息
type PaperFile struct {
	Name        string
	ChapterName string
	Path        string
	Data        []byte
}

// CoursePapers 一门课程按类别分组的试卷
type CoursePapers map[model.PaperType][]PaperFile

// Counts 各阶段通用的处理计数
type Counts struct {
	Exported int
	Skipped  int
	Errors   int
}

// Add 累加计数
func (c *Counts) Add(other Counts) {
	c.Exported += other.Exported
	c.Skipped += other.Skipped
	c.Errors += other.Errors
}

// ScanCourses 扫描JSON目录，按课程归组试卷文件。
// 文件名约定 {type}_{name}_{id}.json，summary.json跳过，
// 坏文件记日志后跳过，不中断整批
func ScanCourses(jsonDir string) (map[string]CoursePapers, error) {
	entries, err := os.ReadDir(jsonDir)
	if err != nil {
		return nil, err
	}

	courses := make(map[string]CoursePapers)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		courseName := entry.Name()
		courseDir := filepath.Join(jsonDir, courseName)

		files, err := os.ReadDir(courseDir)
		if err != nil {
			logger.Warn("读取课程目录失败", logger.F("dir", courseDir), logger.F("err", err))
			continue
		}

		papers := make(CoursePapers)
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") || f.Name() == "summary.json" {
				continue
			}
			pf, paperType, ok := readPaperFile(filepath.Join(courseDir, f.Name()))
			if !ok {
				continue
			}
			papers[paperType] = append(papers[paperType], pf)
		}

		if len(papers) > 0 {
			courses[courseName] = papers
		}
	}
	return courses, nil
}

func readPaperFile(path string) (PaperFile, model.PaperType, bool) {
	stem := strings.TrimSuffix(filepath.Base(path), ".json")

	paperType, paperName := splitPaperStem(stem)
	if paperType == "" {
		return PaperFile{}, "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("读取试卷文件失败", logger.F("file", path), logger.F("err", err))
		return PaperFile{}, "", false
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		logger.Warn("试卷JSON格式错误，已跳过", logger.F("file", path))
		fmt.Printf("Failed to parse JSON %s\n", filepath.Base(path))
		return PaperFile{}, "", false
	}

	return PaperFile{Name: paperName, Path: path, Data: data}, paperType, true
}

// splitPaperStem 解析文件名主干 {type}_{name}_{id}，
// 末段是数字ID时剥掉，类别不认识时整体丢弃
func splitPaperStem(stem string) (model.PaperType, string) {
	for _, t := range model.PaperTypes {
		prefix := string(t) + "_"
		if !strings.HasPrefix(stem, prefix) {
			continue
		}
		name := strings.TrimPrefix(stem, prefix)
		if idx := strings.LastIndex(name, "_"); idx > 0 && isDigits(name[idx+1:]) {
			name = name[:idx]
		}
		return t, name
	}
	return "", ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ExportCourseToMarkdown 导出一门课程的全部试卷为Markdown，
// 目标文件已存在时整个跳过（只计数，绝不覆盖），
// 最后生成按文件名排序合并的完整版文档
func ExportCourseToMarkdown(papers CoursePapers, outDir, courseName string) (Counts, error) {
	var counts Counts
	courseDir := filepath.Join(outDir, util.SanitizeFilename(courseName))
	if err := os.MkdirAll(courseDir, 0755); err != nil {
		return counts, err
	}

	for _, paperType := range model.PaperTypes {
		for _, pf := range papers[paperType] {
			filename := fmt.Sprintf("%s_%s.md", paperType.FilePrefix(), util.SanitizeFilename(pf.Name))
			target := filepath.Join(courseDir, filename)
			if util.FileExists(target) {
				counts.Skipped++
				continue
			}

			paper := model.ParsePaper(pf.Data, paperType)
			if paper.Name == "" {
				paper.Name = pf.Name
			}
			paper.CourseName = courseName
			if paper.ChapterName == "" {
				paper.ChapterName = pf.ChapterName
			}

			if err := util.SaveFile(target, []byte(FormatPaper(paper))); err != nil {
				counts.Errors++
				logger.Error("写入Markdown失败", logger.F("file", target), logger.F("err", err))
				fmt.Printf("  Failed to export %s: %v\n", pf.Name, err)
				continue
			}
			counts.Exported++
		}
	}

	if counts.Exported > 0 || counts.Skipped > 0 {
		if err := mergeCourseMarkdown(courseDir, courseName); err != nil {
			counts.Errors++
			logger.Error("合并课程文档失败", logger.F("course", courseName), logger.F("err", err))
		}
	}
	return counts, nil
}

// mergeCourseMarkdown 将课程目录下全部试卷文档按文件名排序拼接为完整版，
// 已存在时跳过
func mergeCourseMarkdown(courseDir, courseName string) error {
	mergedName := util.SanitizeFilename(courseName) + "_完整版.md"
	target := filepath.Join(courseDir, mergedName)
	if util.FileExists(target) {
		return nil
	}

	entries, err := os.ReadDir(courseDir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") || e.Name() == mergedName {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(courseDir, name))
		if err != nil {
			return err
		}
		parts = append(parts, strings.TrimRight(string(data), "\n"))
	}

	header := fmt.Sprintf("# %s - 完整版\n\n---\n\n", courseName)
	merged := header + strings.Join(parts, "\n\n---\n\n") + "\n"
	return util.SaveFile(target, []byte(merged))
}
