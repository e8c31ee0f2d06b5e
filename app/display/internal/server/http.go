package server

import (
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/product_radar/app/display/internal/conf"
	"github.com/iWorld-y/product_radar/app/display/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.DisplayService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	route := srv.Route("/api")
	route.GET("/reports", func(ctx http.Context) error {
		page, _ := strconv.Atoi(ctx.Query().Get("page"))
		pageSize, _ := strconv.Atoi(ctx.Query().Get("page_size"))

		reply, err := s.ListReports(ctx, page, pageSize)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	route.GET("/reports/{id}", func(ctx http.Context) error {
		id, err := strconv.Atoi(ctx.Vars().Get("id"))
		if err != nil {
			return err
		}

		report, err := s.GetReport(ctx, id)
		if err != nil {
			return err
		}
		return ctx.Result(200, report)
	})

	route.POST("/run", func(ctx http.Context) error {
		reply, err := s.TriggerRun(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(202, reply)
	})

	return srv
}
