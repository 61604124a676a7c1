package stage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kingpoem/moocscript/internal/exporter"
	"github.com/kingpoem/moocscript/pkg/util"
)

// ConvertOptions 转换阶段参数，Markdown/DOCX/PDF共用。
// Courses为空时退回output目录下的selected_courses.json
type ConvertOptions struct {
	InputDir  string
	OutputDir string
	Courses   []string
}

// RunMarkdown 把抓取到的试卷JSON导出为Markdown
func RunMarkdown(ctx context.Context, opts ConvertOptions) error {
	if _, err := os.Stat(opts.InputDir); err != nil {
		fmt.Printf("Input directory not found: %s\n", opts.InputDir)
		fmt.Println("  Please run fetch first to download data")
		return err
	}

	printSummaryBanner(opts.InputDir)

	fmt.Println("Scanning for JSON files...")
	coursesData, err := exporter.ScanCourses(opts.InputDir)
	if err != nil {
		return err
	}
	if len(coursesData) == 0 {
		fmt.Println("No JSON files found")
		return nil
	}
	fmt.Printf("Found %d courses with papers\n", len(coursesData))

	names := filterCourseNames(sortedKeys(coursesData), opts.Courses)
	if names == nil {
		return nil
	}
	fmt.Println()

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Converting to Markdown...")
	fmt.Println(strings.Repeat("=", 60))

	var total exporter.Counts
	for _, courseName := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		counts, err := exporter.ExportCourseToMarkdown(coursesData[courseName], opts.OutputDir, courseName)
		if err != nil {
			total.Errors++
			fmt.Printf("  %s: Failed - %v\n", courseName, err)
			continue
		}
		total.Add(counts)
		status := fmt.Sprintf("%d papers exported", counts.Exported)
		if counts.Skipped > 0 {
			status += fmt.Sprintf(", %d skipped", counts.Skipped)
		}
		fmt.Printf("  %s: %s\n", courseName, status)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("   Total papers exported: %d\n", total.Exported)
	if total.Skipped > 0 {
		fmt.Printf("   Total papers skipped: %d (already exist)\n", total.Skipped)
	}
	if total.Errors > 0 {
		fmt.Printf("   Errors: %d\n", total.Errors)
	}
	fmt.Printf("   Markdown files saved to: %s\n", opts.OutputDir)
	fmt.Println(strings.Repeat("=", 60))
	return nil
}

// printSummaryBanner 若summary.json存在则打印上次抓取的统计
func printSummaryBanner(jsonDir string) {
	data, err := os.ReadFile(filepath.Join(jsonDir, "summary.json"))
	if err != nil {
		return
	}
	var summary struct {
		TotalCourses         int `json:"total_courses"`
		TotalQuizzes         int `json:"total_quizzes"`
		TotalExamsObjective  int `json:"total_exams_objective"`
		TotalExamsSubjective int `json:"total_exams_subjective"`
		TotalHomeworks       int `json:"total_homeworks"`
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return
	}
	fmt.Printf("Found %d courses\n", summary.TotalCourses)
	fmt.Printf("Quizzes: %d\n", summary.TotalQuizzes)
	fmt.Printf("Exams: %d objective, %d subjective\n",
		summary.TotalExamsObjective, summary.TotalExamsSubjective)
	fmt.Printf("   Homeworks: %d\n", summary.TotalHomeworks)
	fmt.Println()
}

// filterCourseNames 按指定课程名过滤。filter为空时原样返回；
// 过滤后为空时打印提示并返回nil
func filterCourseNames(names, filter []string) []string {
	if len(filter) == 0 {
		return names
	}
	want := make(map[string]bool, len(filter))
	for _, n := range filter {
		want[n] = true
		want[util.SanitizeFilename(n)] = true
	}
	var filtered []string
	for _, n := range names {
		if want[n] {
			filtered = append(filtered, n)
		}
	}
	if len(filtered) == 0 {
		fmt.Println("No matching courses found in selected list")
		return nil
	}
	fmt.Printf("Processing %d selected course(s): %s\n", len(filtered), strings.Join(filtered, ", "))
	return filtered
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
