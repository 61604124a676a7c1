package stage

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kingpoem/moocscript/internal/exporter"
	"github.com/kingpoem/moocscript/pkg/config"
	"github.com/kingpoem/moocscript/pkg/docgen"
	"github.com/kingpoem/moocscript/pkg/imagecache"
)

// newImageResolver 按配置创建带本地缓存的图片解析器
func newImageResolver() docgen.Resolver {
	return imagecache.New(
		config.GetString("image.cache_dir"),
		config.GetString("mooc.user_agent"),
		time.Duration(config.GetInt("image.timeout"))*time.Second,
	)
}

// scanMarkdownInput 扫描Markdown输入目录并应用课程过滤
func scanMarkdownInput(opts ConvertOptions) (map[string][]string, []string, error) {
	if _, err := os.Stat(opts.InputDir); err != nil {
		fmt.Printf("Input directory not found: %s\n", opts.InputDir)
		fmt.Println("  Please run markdown conversion first to generate Markdown files")
		return nil, nil, err
	}

	fmt.Println("Scanning for Markdown files...")
	courses, err := exporter.ScanMarkdownCourses(opts.InputDir)
	if err != nil {
		return nil, nil, err
	}
	if len(courses) == 0 {
		fmt.Println("No Markdown files found")
		return nil, nil, nil
	}

	totalFiles := 0
	for _, files := range courses {
		totalFiles += len(files)
	}
	fmt.Printf("Found %d courses with %d Markdown files\n", len(courses), totalFiles)

	names := filterCourseNames(sortedKeys(courses), opts.Courses)
	fmt.Println()
	return courses, names, nil
}

// RunDocx 把Markdown文档转换为DOCX
func RunDocx(ctx context.Context, opts ConvertOptions) error {
	courses, names, err := scanMarkdownInput(opts)
	if err != nil || names == nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Converting to DOCX...")
	fmt.Println(strings.Repeat("=", 60))

	resolver := newImageResolver()
	var total exporter.Counts
	for _, courseName := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		counts := exporter.ConvertCourseToDocx(courseName, courses[courseName], opts.OutputDir, resolver)
		total.Add(counts)

		status := fmt.Sprintf("%d DOCX files exported", counts.Exported)
		if counts.Skipped > 0 {
			status += fmt.Sprintf(", %d skipped", counts.Skipped)
		}
		fmt.Printf("  %s: %s\n", courseName, status)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("   Total DOCX files exported: %d\n", total.Exported)
	if total.Skipped > 0 {
		fmt.Printf("   Total DOCX files skipped: %d (already exist)\n", total.Skipped)
	}
	if total.Errors > 0 {
		fmt.Printf("   Errors: %d\n", total.Errors)
	}
	fmt.Printf("   DOCX files saved to: %s\n", opts.OutputDir)
	fmt.Println(strings.Repeat("=", 60))
	return nil
}
