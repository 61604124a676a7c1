package mooc

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// SelectCoursesInteractively 在终端上让用户挑选课程。
// 支持逗号分隔的序号、区间（如2-4）和all，非法输入重新提示
func SelectCoursesInteractively(in io.Reader, courses []Course) []Course {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("课程列表")
	fmt.Println(strings.Repeat("=", 60))
	for i, course := range courses {
		fmt.Printf("%3d. %s\n", i+1, course.Name)
	}
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("\n请选择要下载的课程（输入序号，多个用逗号分隔，如：1,3,5 或输入 all 下载全部）：")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println("\n已取消选择")
			return nil
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Println("未选择任何课程")
			return nil
		}
		if strings.EqualFold(input, "all") {
			fmt.Printf("\n已选择全部 %d 门课程\n", len(courses))
			return courses
		}

		indices := parseSelection(input, len(courses))
		if len(indices) == 0 {
			fmt.Println("未选择任何有效课程，请重新输入")
			continue
		}

		selected := make([]Course, 0, len(indices))
		fmt.Printf("\n已选择 %d 门课程：\n", len(indices))
		for _, idx := range indices {
			course := courses[idx-1]
			fmt.Printf("  %d. %s\n", idx, course.Name)
			selected = append(selected, course)
		}
		return selected
	}
}

// parseSelection 解析选择表达式，返回去重升序的1起始序号
func parseSelection(input string, total int) []int {
	seen := map[int]bool{}
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "-") {
			bounds := strings.SplitN(part, "-", 2)
			start, err1 := strconv.Atoi(strings.TrimSpace(bounds[0]))
			end, err2 := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err1 != nil || err2 != nil {
				fmt.Printf("无效的范围格式: %s\n", part)
				continue
			}
			for i := start; i <= end; i++ {
				if i >= 1 && i <= total {
					seen[i] = true
				}
			}
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			fmt.Printf("无效的输入: %s\n", part)
			continue
		}
		if idx < 1 || idx > total {
			fmt.Printf("无效的序号: %d (范围: 1-%d)\n", idx, total)
			continue
		}
		seen[idx] = true
	}

	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// FilterCoursesByName 按课程名过滤，names为空时原样返回
func FilterCoursesByName(courses []Course, names []string) []Course {
	if len(names) == 0 {
		return courses
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var filtered []Course
	for _, c := range courses {
		if want[c.Name] {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
