// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h RouterHandlers, profileGate gin.HandlerFunc) {
	// 认证管理
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
	}

	// 用户管理
	users := v1.Group("/users")
	{
		users.GET("/me", h.User.Me)
		users.PUT("/me", h.User.UpdateProfile)
		users.GET("/me/profile-status", h.User.ProfileStatus)
	}

	// 报告管理（资料完整性门禁）
	reports := v1.Group("/reports", profileGate)
	{
		reports.GET("", h.Report.ListReports)
		reports.POST("", h.Report.CreateReport)
		reports.GET("/:rid", h.Report.GetReport)
		reports.PUT("/:rid", h.Report.UpdateReport)
		reports.DELETE("/:rid", h.Report.DeleteReport)

		// 编辑全文与导出
		reports.PUT("/:rid/content", h.Report.UpdateContent)
		reports.GET("/:rid/export", h.Export.ExportReport)

		// 段落编辑
		reports.POST("/:rid/paragraphs", h.Paragraph.AddParagraph)
		reports.PUT("/:rid/paragraphs", h.Paragraph.ReplaceParagraphs)
		reports.POST("/:rid/paragraphs/reorder", h.Paragraph.ReorderParagraphs)
		reports.PUT("/:rid/paragraphs/:pid", h.Paragraph.UpdateParagraph)
		reports.DELETE("/:rid/paragraphs/:pid", h.Paragraph.DeleteParagraph)
		reports.POST("/:rid/paragraphs/:pid/move", h.Paragraph.MoveParagraph)

		// 参考资料
		reports.POST("/:rid/references/links", h.Reference.AddLink)
		reports.DELETE("/:rid/references/links/:lid", h.Reference.RemoveLink)
		reports.POST("/:rid/references/files", h.Reference.UploadFile)
		reports.GET("/:rid/references/files/:fid", h.Reference.DownloadFile)
		reports.DELETE("/:rid/references/files/:fid", h.Reference.DeleteFile)

		// AI 生成
		reports.POST("/:rid/structure/generate", h.Generation.GenerateStructure)
		reports.POST("/:rid/content/generate", h.Generation.GenerateContent)
		reports.POST("/:rid/paragraphs/:pid/content/generate", h.Generation.GenerateParagraph)
	}
}
