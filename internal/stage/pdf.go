package stage

import (
	"context"
	"fmt"
	"strings"

	"github.com/kingpoem/moocscript/internal/exporter"
	"github.com/kingpoem/moocscript/pkg/config"
)

// PdfOptions PDF转换阶段参数。HtmlDir非空时保存HTML中间产物
type PdfOptions struct {
	ConvertOptions
	HtmlDir string
}

// RunPdf 把Markdown文档转换为PDF
func RunPdf(ctx context.Context, opts PdfOptions) error {
	courses, names, err := scanMarkdownInput(opts.ConvertOptions)
	if err != nil || names == nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Converting to PDF...")
	fmt.Println(strings.Repeat("=", 60))

	fontPath := config.GetString("pdf.font")
	boldFontPath := config.GetString("pdf.font_bold")
	resolver := newImageResolver()

	var total exporter.Counts
	for _, courseName := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		counts := exporter.ConvertCourseToPdf(
			courseName, courses[courseName],
			opts.OutputDir, opts.HtmlDir,
			fontPath, boldFontPath, resolver)
		total.Add(counts)

		status := fmt.Sprintf("%d PDF files exported", counts.Exported)
		if counts.Skipped > 0 {
			status += fmt.Sprintf(", %d skipped", counts.Skipped)
		}
		fmt.Printf("  %s: %s\n", courseName, status)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("   Total PDF files exported: %d\n", total.Exported)
	if total.Skipped > 0 {
		fmt.Printf("   Total PDF files skipped: %d (already exist)\n", total.Skipped)
	}
	if total.Errors > 0 {
		fmt.Printf("   Errors: %d\n", total.Errors)
	}
	fmt.Printf("   PDF files saved to: %s\n", opts.OutputDir)
	fmt.Println(strings.Repeat("=", 60))
	return nil
}
