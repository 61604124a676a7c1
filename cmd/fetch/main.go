package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/kingpoem/moocscript/internal/stage"
	"github.com/kingpoem/moocscript/pkg/config"
	"github.com/kingpoem/moocscript/pkg/logger"
	"github.com/kingpoem/moocscript/pkg/util"
)

func main() {
	output := pflag.String("output", "output", "输出目录")
	token := pflag.String("token", "", "慕课mob token（优先于环境变量MOOC_MOB_TOKEN）")
	all := pflag.Bool("all", false, "抓取全部课程，跳过交互选择")
	courses := pflag.StringSlice("courses", nil, "只抓取指定课程名")
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

	err := stage.RunFetch(ctx, stage.FetchOptions{
		OutputDir: *output,
		Token:     stage.ResolveToken(*token),
		All:       *all,
		Courses:   *courses,
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
