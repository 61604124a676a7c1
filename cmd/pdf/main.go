package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/kingpoem/moocscript/internal/mooc"
	"github.com/kingpoem/moocscript/internal/stage"
	"github.com/kingpoem/moocscript/pkg/config"
	"github.com/kingpoem/moocscript/pkg/logger"
	"github.com/kingpoem/moocscript/pkg/util"
)

func main() {
	input := pflag.String("input", "output/markdown", "Markdown输入目录")
	output := pflag.String("output", "output/pdf", "PDF输出目录")
	htmlDir := pflag.String("html-dir", "output/html", "HTML中间产物目录，留空则不保存")
	courses := pflag.StringSlice("courses", nil, "只处理指定课程名")
	coursesFile := pflag.String("courses-file", "", "课程名列表JSON文件")
	imageCache := pflag.String("image-cache", "", "图片缓存目录（覆盖配置）")
	cfgFile := pflag.String("config", "", "配置文件路径")
	pflag.Parse()

	if err := config.Init(*cfgFile); err != nil {
		log.Fatalf("初始化配置失败: %v", err)
	}
	if *imageCache != "" {
		config.Set("image.cache_dir", *imageCache)
	}
	if err := util.InitNode(config.GetUint64("app.node_id")); err != nil {
		log.Fatalf("初始化ID生成器失败: %v", err)
	}
	logger.Init()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	selected := *courses
	if *coursesFile != "" {
		selected = mooc.LoadCourseNames(*coursesFile)
	} else if len(selected) == 0 {
		selected = mooc.LoadSelectedCourses(filepath.Dir(*input))
	}

	err := stage.RunPdf(ctx, stage.PdfOptions{
		ConvertOptions: stage.ConvertOptions{
			InputDir:  *input,
			OutputDir: *output,
			Courses:   selected,
		},
		HtmlDir: *htmlDir,
	})
	if ctx.Err() != nil {
		fmt.Println("\n\nInterrupted by user")
		return
	}
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		os.Exit(1)
	}
}
