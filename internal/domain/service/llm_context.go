// Package service 提供跨层共享的领域辅助能力
package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyWorkflow llmCtxKey = "llm_workflow"
	llmCtxKeyProvider llmCtxKey = "llm_provider"
)

// WithWorkflow 在 Context 中标注当前 LLM 工作流名
// 观测回调据此给指标与追踪打标签
func WithWorkflow(ctx context.Context, workflow string) context.Context {
	if ctx == nil {
		return nil
	}
	if w := strings.TrimSpace(workflow); w != "" {
		return context.WithValue(ctx, llmCtxKeyWorkflow, w)
	}
	return ctx
}

// WithProvider 在 Context 中标注当前模型提供方
func WithProvider(ctx context.Context, provider string) context.Context {
	if ctx == nil {
		return nil
	}
	if p := strings.TrimSpace(provider); p != "" {
		return context.WithValue(ctx, llmCtxKeyProvider, p)
	}
	return ctx
}

// WithWorkflowProvider 同时标注工作流与提供方
func WithWorkflowProvider(ctx context.Context, workflow, provider string) context.Context {
	return WithProvider(WithWorkflow(ctx, workflow), provider)
}

// WorkflowFromContext 读取工作流名，缺失时返回 "unknown"
func WorkflowFromContext(ctx context.Context) string {
	return llmCtxValue(ctx, llmCtxKeyWorkflow)
}

// ProviderFromContext 读取提供方名，缺失时返回 "unknown"
func ProviderFromContext(ctx context.Context) string {
	return llmCtxValue(ctx, llmCtxKeyProvider)
}

func llmCtxValue(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return "unknown"
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return strings.TrimSpace(s)
}
