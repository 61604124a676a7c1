package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kingpoem/moocscript/pkg/docgen"
	"github.com/kingpoem/moocscript/pkg/logger"
	"github.com/kingpoem/moocscript/pkg/markup"
	"github.com/kingpoem/moocscript/pkg/util"
)

// ScanMarkdownCourses 扫描Markdown目录，按课程归组.md文件，文件名排序
func ScanMarkdownCourses(mdDir string) (map[string][]string, error) {
	entries, err := os.ReadDir(mdDir)
	if err != nil {
		return nil, err
	}

	courses := make(map[string][]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		courseDir := filepath.Join(mdDir, entry.Name())
		files, err := os.ReadDir(courseDir)
		if err != nil {
			logger.Warn("读取课程目录失败", logger.F("dir", courseDir), logger.F("err", err))
			continue
		}
		var paths []string
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
				continue
			}
			paths = append(paths, filepath.Join(courseDir, f.Name()))
		}
		if len(paths) == 0 {
			continue
		}
		sort.Strings(paths)
		courses[entry.Name()] = paths
	}
	return courses, nil
}

// ConvertCourseToDocx 把一门课程的Markdown文件逐个转为DOCX。
// 已存在的输出文件跳过，单个文件失败只计数不中断
func ConvertCourseToDocx(courseName string, files []string, outDir string, resolver docgen.Resolver) Counts {
	var counts Counts
	courseOut := filepath.Join(outDir, courseName)
	renderer := docgen.NewRenderer(resolver)

	for _, mdPath := range files {
		outPath := filepath.Join(courseOut, stemOf(mdPath)+".docx")
		if util.FileExists(outPath) {
			counts.Skipped++
			continue
		}

		data, err := os.ReadFile(mdPath)
		if err != nil {
			counts.Errors++
			logger.Error("读取Markdown失败", logger.F("file", mdPath), logger.F("err", err))
			fmt.Printf("  Failed to convert %s: %v\n", filepath.Base(mdPath), err)
			continue
		}

		sink := docgen.NewDocxSink()
		renderer.Render(markup.Classify(string(data)), sink)
		out, err := sink.Bytes()
		if err == nil {
			err = util.SaveFile(outPath, out)
		}
		if err != nil {
			counts.Errors++
			logger.Error("生成DOCX失败", logger.F("file", mdPath), logger.F("err", err))
			fmt.Printf("  Failed to convert %s: %v\n", filepath.Base(mdPath), err)
			continue
		}
		counts.Exported++
	}
	return counts
}

// ConvertCourseToPdf 把一门课程的Markdown文件逐个转为PDF。
// htmlDir非空时同时保存带样式的HTML中间产物
func ConvertCourseToPdf(courseName string, files []string, outDir, htmlDir, fontPath, boldFontPath string, resolver docgen.Resolver) Counts {
	var counts Counts
	courseOut := filepath.Join(outDir, courseName)
	renderer := docgen.NewRenderer(resolver)
	conv := docgen.NewHtmlConverter()

	for _, mdPath := range files {
		stem := stemOf(mdPath)
		outPath := filepath.Join(courseOut, stem+".pdf")
		if util.FileExists(outPath) {
			counts.Skipped++
			continue
		}

		data, err := os.ReadFile(mdPath)
		if err != nil {
			counts.Errors++
			logger.Error("读取Markdown失败", logger.F("file", mdPath), logger.F("err", err))
			fmt.Printf("  Failed to convert %s: %v\n", filepath.Base(mdPath), err)
			continue
		}

		if htmlDir != "" {
			page, herr := conv.ConvertMarkdownToPage(stem, data)
			if herr == nil {
				herr = util.SaveFile(filepath.Join(htmlDir, courseName, stem+".html"), []byte(page))
			}
			if herr != nil {
				// HTML只是中间产物，失败不影响PDF输出
				logger.Warn("保存HTML中间产物失败", logger.F("file", mdPath), logger.F("err", herr))
			}
		}

		sink, err := docgen.NewPdfSink(fontPath, boldFontPath)
		if err == nil {
			renderer.Render(markup.Classify(string(data)), sink)
			var out []byte
			out, err = sink.Bytes()
			if err == nil {
				err = util.SaveFile(outPath, out)
			}
		}
		if err != nil {
			counts.Errors++
			logger.Error("生成PDF失败", logger.F("file", mdPath), logger.F("err", err))
			fmt.Printf("  Failed to convert %s: %v\n", filepath.Base(mdPath), err)
			continue
		}
		counts.Exported++
	}
	return counts
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
