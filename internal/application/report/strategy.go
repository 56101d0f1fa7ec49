// Package report 实现报告构成与内容生成的应用服务
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"report-ai-api/pkg/logger"
	"report-ai-api/pkg/metrics"
)

// Strategy 一种具名的生成策略
type Strategy[I, O any] struct {
	Name string
	Run  func(ctx context.Context, in I) (O, error)
}

// Chain 按序尝试多个策略，首个成功者胜出
// 替代层层嵌套的 try/fallback，策略顺序一目了然
type Chain[I, O any] struct {
	Kind       string
	Strategies []Strategy[I, O]
}

// ChainResult 链执行结果，记录胜出的策略名
type ChainResult[O any] struct {
	Output   O
	Strategy string
}

// Execute 依次执行策略直到成功；全部失败时返回聚合错误
func (c *Chain[I, O]) Execute(ctx context.Context, in I) (*ChainResult[O], error) {
	if len(c.Strategies) == 0 {
		return nil, fmt.Errorf("no strategies configured for %s", c.Kind)
	}

	start := time.Now()
	var errs []error
	for i, s := range c.Strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := s.Run(ctx, in)
		if err == nil {
			metrics.GenerationTotal.WithLabelValues(c.Kind, s.Name, "success").Inc()
			metrics.GenerationDuration.WithLabelValues(c.Kind).Observe(time.Since(start).Seconds())
			if i > 0 {
				metrics.GenerationFallbackTotal.WithLabelValues(c.Kind, s.Name).Inc()
			}
			return &ChainResult[O]{Output: out, Strategy: s.Name}, nil
		}

		metrics.GenerationTotal.WithLabelValues(c.Kind, s.Name, "error").Inc()
		logger.Warn(ctx, "generation strategy failed",
			"kind", c.Kind,
			"strategy", s.Name,
			"error", err,
		)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
	}

	metrics.GenerationDuration.WithLabelValues(c.Kind).Observe(time.Since(start).Seconds())
	return nil, fmt.Errorf("all %s strategies failed: %w", c.Kind, errors.Join(errs...))
}
