// Package stage 实现流水线的各个阶段：抓取、Markdown导出、DOCX与PDF转换。
// 各cmd入口只做参数解析，流程都在这里
package stage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kingpoem/moocscript/internal/mooc"
	"github.com/kingpoem/moocscript/pkg/config"
)

// FetchOptions 抓取阶段参数
type FetchOptions struct {
	OutputDir string
	Token     string
	All       bool     // 不交互，抓取全部课程
	Courses   []string // 指定课程名，非空时跳过交互选择
}

// ResolveToken 依次从命令行、环境变量和配置文件取mob token
func ResolveToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	if env := os.Getenv("MOOC_MOB_TOKEN"); env != "" {
		return env
	}
	return config.GetString("mooc.token")
}

// RunFetch 抓取课程列表和所选课程的全部试卷JSON
func RunFetch(ctx context.Context, opts FetchOptions) error {
	client, err := mooc.NewClient(
		config.GetString("mooc.base_url"),
		opts.Token,
		config.GetString("mooc.user_agent"),
		time.Duration(config.GetInt("mooc.timeout"))*time.Second,
	)
	if err != nil {
		fmt.Println("Error: MOOC_MOB_TOKEN not set!")
		fmt.Println("  Please set it via environment variable: export MOOC_MOB_TOKEN=your_token")
		fmt.Println("  Or use --token argument")
		return err
	}

	fetcher := mooc.NewFetcher(client, opts.OutputDir)

	fmt.Println("Step 1: Fetching course list...")
	fmt.Println()
	courses, err := fetcher.FetchAllCourses(ctx, config.GetInt("mooc.page_size"))
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		fmt.Println("No courses found")
		return nil
	}

	var selected []mooc.Course
	switch {
	case len(opts.Courses) > 0:
		selected = mooc.FilterCoursesByName(courses, opts.Courses)
		if len(selected) == 0 {
			fmt.Println("No matching courses found")
			return nil
		}
	case opts.All:
		selected = courses
		fmt.Printf("\n已选择全部 %d 门课程（--all 模式）\n", len(courses))
	default:
		selected = mooc.SelectCoursesInteractively(os.Stdin, courses)
		if len(selected) == 0 {
			fmt.Println("No courses selected. Exiting.")
			return nil
		}
	}

	if err := mooc.SaveSelectedCourses(opts.OutputDir, selected); err != nil {
		fmt.Printf("Failed to save selected courses: %v\n", err)
	}

	fmt.Printf("\nStep 2: Fetching JSON data for %d selected course(s)...\n\n", len(selected))
	if err := fetcher.FetchCourses(ctx, selected); err != nil {
		return err
	}

	fetcher.PrintStats()

	summaryPath, err := fetcher.WriteSummary()
	if err != nil {
		fmt.Printf("Failed to save summary: %v\n", err)
	} else {
		fmt.Println("\nAll done!")
		fmt.Printf("   JSON files saved to: %s\n", filepath.Join(opts.OutputDir, "json"))
		fmt.Printf("   Summary saved to: %s\n", summaryPath)
	}
	return nil
}
