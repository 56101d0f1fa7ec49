// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageRequest 分页请求参数
type PageRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// Normalize 规范化分页参数
func (r *PageRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 20
	}
	if r.PageSize > 100 {
		r.PageSize = 100
	}
}

// BindPage 从 Gin Context 绑定分页参数
func BindPage(c *gin.Context) PageRequest {
	req := PageRequest{
		Page:     parseIntWithDefault(c.Query("page"), 1),
		PageSize: parseIntWithDefault(c.Query("page_size"), 20),
	}
	req.Normalize()
	return req
}

// parseIntWithDefault 解析整数，失败时返回默认值
func parseIntWithDefault(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// BindReportID 从 URI 绑定报告 ID
func BindReportID(c *gin.Context) string {
	return c.Param("rid")
}

// BindParagraphID 从 URI 绑定段落 ID
func BindParagraphID(c *gin.Context) string {
	return c.Param("pid")
}

// BindLinkID 从 URI 绑定参考链接 ID
func BindLinkID(c *gin.Context) string {
	return c.Param("lid")
}

// BindFileID 从 URI 绑定参考文件 ID
func BindFileID(c *gin.Context) string {
	return c.Param("fid")
}
