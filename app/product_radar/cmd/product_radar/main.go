package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/config"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/engine"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/fetch"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/logger"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/storage"
)

var (
	confPath = flag.String("conf", "configs/config.yaml", "配置文件路径")
	dateStr  = flag.String("date", "", "分析日期 (YYYY-MM-DD)，默认当天")
	schedule = flag.String("schedule", "", "cron 表达式，设置后以守护进程模式定时运行")
)

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*confPath)
	if err != nil {
		log.Printf("无法加载配置文件: %v，使用默认配置", err)
		cfg = config.DefaultConfig()
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动产品雷达...")

	var date time.Time
	if *dateStr != "" {
		date, err = time.Parse(time.DateOnly, *dateStr)
		if err != nil {
			logger.Log.Fatalf("日期格式错误 (应为 YYYY-MM-DD): %v", err)
		}
	}

	// 3. 初始化数据库连接
	// 如果配置了数据库信息，则尝试连接
	var store engine.RunStore
	if cfg.DB.Host != "" {
		s, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Errorf("无法连接数据库: %v. 将仅生成报告文件。", err)
		} else {
			store = s
			defer s.Close()
			logger.Log.Info("已成功连接到数据库")
		}
	} else {
		logger.Log.Info("未配置数据库信息，跳过数据库连接")
	}

	// 4. 构建引擎
	eng, err := engine.NewEngine(cfg, fetch.NewClient(cfg.Source), store)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	if *schedule == "" {
		runOnce(eng, date)
		return
	}

	// 5. 守护进程模式，按 cron 表达式定时运行
	c := cron.New()
	if _, err := c.AddFunc(*schedule, func() {
		runOnce(eng, time.Time{})
	}); err != nil {
		logger.Log.Fatalf("cron 表达式无效 [%s]: %v", *schedule, err)
	}
	logger.Log.Infof("定时任务已注册: %s", *schedule)
	c.Run()
}

func runOnce(eng *engine.Engine, date time.Time) {
	ctx := context.Background()

	result, err := eng.Run(ctx, engine.RunOptions{Date: date})
	if err != nil {
		logger.Log.Errorf("分析流程失败: %v", err)
		return
	}
	logger.Log.Infof("✅ 日报生成完毕: %s (%d 个产品)", result.ReportPath, len(result.Report.Products))
}
