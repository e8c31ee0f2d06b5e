package service

import (
	"context"
	"sync/atomic"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/product_radar/app/display/internal/domain"
	"github.com/iWorld-y/product_radar/app/display/internal/usecase"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/engine"
)

// ListReportsReply 报表列表响应
type ListReportsReply struct {
	Reports []*domain.ReportSummary `json:"reports"`
	Total   int                     `json:"total"`
}

// RunReply 触发分析的响应
type RunReply struct {
	Status string `json:"status"`
}

// DisplayService 报表展示与分析触发服务
type DisplayService struct {
	ucReport *usecase.ReportUseCase
	engine   *engine.Engine
	running  atomic.Bool
	log      *log.Helper
}

// NewDisplayService 创建展示服务，eng 传 nil 时禁用手动触发
func NewDisplayService(ucReport *usecase.ReportUseCase, eng *engine.Engine, logger log.Logger) *DisplayService {
	return &DisplayService{
		ucReport: ucReport,
		engine:   eng,
		log:      log.NewHelper(logger),
	}
}

// ListReports 分页列出历史分析运行
func (s *DisplayService) ListReports(ctx context.Context, page, pageSize int) (*ListReportsReply, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	reports, total, err := s.ucReport.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []*domain.ReportSummary{}
	}
	return &ListReportsReply{Reports: reports, Total: total}, nil
}

// GetReport 获取单次分析运行的完整报表
func (s *DisplayService) GetReport(ctx context.Context, id int) (*domain.GroupedReport, error) {
	return s.ucReport.GetByID(ctx, id)
}

// TriggerRun 手动触发一次后台分析。
// 同一时刻只允许一次运行，重复触发返回冲突错误。
func (s *DisplayService) TriggerRun(ctx context.Context) (*RunReply, error) {
	if s.engine == nil {
		return nil, errors.ServiceUnavailable("ENGINE_DISABLED", "analysis engine is not configured")
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil, errors.Conflict("RUN_IN_PROGRESS", "an analysis run is already in progress")
	}

	go func() {
		defer s.running.Store(false)

		result, err := s.engine.Run(context.Background(), engine.RunOptions{
			ProgressCallback: func(status string, progress int) {
				s.log.Infof("analysis progress %d%%: %s", progress, status)
			},
		})
		if err != nil {
			s.log.Errorf("manual analysis run failed: %v", err)
			return
		}
		s.log.Infof("manual analysis run finished: %s", result.ReportPath)
	}()

	return &RunReply{Status: "started"}, nil
}
