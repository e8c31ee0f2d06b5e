package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/product_radar/app/display/internal/conf"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/config"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/engine"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/fetch"
	prLogger "github.com/iWorld-y/product_radar/app/product_radar/pkg/logger"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/storage"
)

// NewRadarEngine 初始化 product_radar 引擎
func NewRadarEngine(c *conf.Radar, logger log.Logger) (*engine.Engine, func(), error) {
	if c == nil {
		return nil, func() {}, nil
	}

	// 将 internal/conf.Radar 转换为 pkg/config.Config，未覆盖的字段保留默认值
	prCfg := config.DefaultConfig()
	if c.Source != nil {
		if c.Source.BaseUrl != "" {
			prCfg.Source.BaseURL = c.Source.BaseUrl
		}
		if c.Source.ProbeUrl != "" {
			prCfg.Source.ProbeURL = c.Source.ProbeUrl
		}
		if c.Source.Timeout > 0 {
			prCfg.Source.Timeout = int(c.Source.Timeout)
		}
		if c.Source.MaxRetries > 0 {
			prCfg.Source.MaxRetries = int(c.Source.MaxRetries)
		}
		if c.Source.Qps > 0 {
			prCfg.Source.QPS = int(c.Source.Qps)
		}
		if c.Source.Rpm > 0 {
			prCfg.Source.RPM = int(c.Source.Rpm)
		}
		prCfg.Source.EnrichFromSite = c.Source.EnrichFromSite
	}
	if c.Log != nil {
		prCfg.Log.Level = c.Log.Level
		prCfg.Log.File = c.Log.File
	}
	if c.Concurrency != nil {
		prCfg.Concurrency.Workers = int(c.Concurrency.Workers)
		prCfg.Concurrency.TaskTimeout = int(c.Concurrency.TaskTimeout)
	}
	if c.Report != nil && c.Report.OutputDir != "" {
		prCfg.Report.OutputDir = c.Report.OutputDir
	}
	if c.Db != nil {
		prCfg.DB = config.DBConfig{
			Host:     c.Db.Host,
			Port:     int(c.Db.Port),
			User:     c.Db.User,
			Password: c.Db.Password,
			Name:     c.Db.Name,
		}
	}

	// 初始化日志
	if err := prLogger.InitLogger(prCfg.Log.Level, prCfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init product_radar logger: %v", err)
		_ = prLogger.InitLogger("info", "") // 降级处理
	}

	// 初始化存储层
	var store engine.RunStore
	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up product_radar engine")
	}
	if prCfg.DB.Host != "" {
		s, err := storage.NewStorage(prCfg.DB)
		if err != nil {
			log.NewHelper(logger).Errorf("Failed to init storage for engine: %v", err)
			return nil, nil, err
		}
		store = s
		cleanup = func() {
			log.NewHelper(logger).Info("Cleaning up product_radar engine")
			s.Close()
		}
	}

	// 初始化核心引擎
	eng, err := engine.NewEngine(prCfg, fetch.NewClient(prCfg.Source), store)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	return eng, cleanup, nil
}
