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

// 一键流水线：抓取JSON，导出Markdown，再转DOCX
func main() {
	output := pflag.String("output", "output", "输出目录")
	token := pflag.String("token", "", "慕课mob token（优先于环境变量MOOC_MOB_TOKEN）")
	all := pflag.Bool("all", false, "抓取全部课程，跳过交互选择")
	skipMarkdown := pflag.Bool("skip-markdown", false, "只抓取JSON，跳过Markdown转换")
	skipDocx := pflag.Bool("skip-docx", false, "跳过DOCX转换")
	cfgFile := pflag.String("config", "", "配置文件路径")
	pflag.Parse()

	if err := config.Init(*cfgFile); err != nil {
		log.Fatalf("初始化配置失败: %v", err)
	}
	if err := util.InitNode(config.GetUint64("app.node_id")); err != nil {
		log.Fatalf("初始化ID生成器失败: %v", err)
	}
	logger.Init()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *output, *token, *all, *skipMarkdown, *skipDocx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\n\nInterrupted by user")
			return
		}
		fmt.Printf("\nError: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, output, token string, all, skipMarkdown, skipDocx bool) error {
	if err := stage.RunFetch(ctx, stage.FetchOptions{
		OutputDir: output,
		Token:     stage.ResolveToken(token),
		All:       all,
	}); err != nil {
		return err
	}
	if skipMarkdown {
		return nil
	}

	selected := mooc.LoadSelectedCourses(output)
	jsonDir := filepath.Join(output, "json")
	markdownDir := filepath.Join(output, "markdown")

	fmt.Println()
	if err := stage.RunMarkdown(ctx, stage.ConvertOptions{
		InputDir:  jsonDir,
		OutputDir: markdownDir,
		Courses:   selected,
	}); err != nil {
		return err
	}
	if skipDocx {
		return nil
	}

	fmt.Println()
	return stage.RunDocx(ctx, stage.ConvertOptions{
		InputDir:  markdownDir,
		OutputDir: filepath.Join(output, "docx"),
		Courses:   selected,
	})
}
