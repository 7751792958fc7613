// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/handler"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	projectHandler *handler.ProjectHandler,
	volumeHandler *handler.VolumeHandler,
	chapterHandler *handler.ChapterHandler,
	characterHandler *handler.CharacterHandler,
	outlineHandler *handler.OutlineHandler,
	worldHandler *handler.WorldHandler,
	settingsHandler *handler.SettingsHandler,
	statsHandler *handler.StatsHandler,
	dataHandler *handler.DataHandler,
	sessionHandler *handler.SessionHandler,
) {
	// 项目管理
	projects := v1.Group("/projects")
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/current", projectHandler.GetCurrentProject)
		projects.PUT("/current", projectHandler.SetCurrentProject)
		projects.GET("/:pid", projectHandler.GetProject)
		projects.PUT("/:pid", projectHandler.UpdateProject)
		projects.DELETE("/:pid", projectHandler.DeleteProject)
		projects.POST("/:pid/wordcount/refresh", projectHandler.RefreshWordCount)

		// 项目封面与章节指针
		projects.GET("/:pid/cover", projectHandler.GetCover)
		projects.PUT("/:pid/cover", projectHandler.SetCover)
		projects.GET("/:pid/current-chapter", projectHandler.GetCurrentChapter)
		projects.PUT("/:pid/current-chapter", projectHandler.SetCurrentChapter)

		// 项目下的卷
		projects.GET("/:pid/volumes", volumeHandler.ListVolumes)
		projects.POST("/:pid/volumes", volumeHandler.CreateVolume)
		projects.POST("/:pid/volumes/reorder", volumeHandler.ReorderVolumes)
		projects.GET("/:pid/volumes/:vid", volumeHandler.GetVolume)
		projects.PUT("/:pid/volumes/:vid", volumeHandler.UpdateVolume)
		projects.DELETE("/:pid/volumes/:vid", volumeHandler.DeleteVolume)

		// 项目下的章节
		projects.GET("/:pid/chapters", chapterHandler.ListChapters)
		projects.POST("/:pid/chapters", chapterHandler.CreateChapter)
		projects.POST("/:pid/chapters/reorder", chapterHandler.ReorderChapters)
		projects.GET("/:pid/chapters/:cid", chapterHandler.GetChapter)
		projects.PUT("/:pid/chapters/:cid", chapterHandler.UpdateChapter)
		projects.DELETE("/:pid/chapters/:cid", chapterHandler.DeleteChapter)
		projects.POST("/:pid/chapters/:cid/move", chapterHandler.MoveChapter)

		// 项目下的角色
		projects.GET("/:pid/characters", characterHandler.ListCharacters)
		projects.POST("/:pid/characters", characterHandler.CreateCharacter)
		projects.GET("/:pid/characters/:chid", characterHandler.GetCharacter)
		projects.PUT("/:pid/characters/:chid", characterHandler.UpdateCharacter)
		projects.DELETE("/:pid/characters/:chid", characterHandler.DeleteCharacter)

		// 项目下的大纲
		projects.GET("/:pid/outlines", outlineHandler.ListOutlines)
		projects.POST("/:pid/outlines", outlineHandler.CreateOutline)
		projects.POST("/:pid/outlines/reorder", outlineHandler.ReorderOutlines)
		projects.GET("/:pid/outlines/:oid", outlineHandler.GetOutline)
		projects.PUT("/:pid/outlines/:oid", outlineHandler.UpdateOutline)
		projects.DELETE("/:pid/outlines/:oid", outlineHandler.DeleteOutline)

		// 项目下的世界观
		projects.GET("/:pid/world", worldHandler.ListWorldItems)
		projects.POST("/:pid/world", worldHandler.CreateWorldItem)
		projects.GET("/:pid/world/:wid", worldHandler.GetWorldItem)
		projects.PUT("/:pid/world/:wid", worldHandler.UpdateWorldItem)
		projects.DELETE("/:pid/world/:wid", worldHandler.DeleteWorldItem)

		// 项目写作统计
		projects.GET("/:pid/stats", statsHandler.GetStats)
		projects.POST("/:pid/stats/record", statsHandler.RecordStats)
	}

	// 全局设置
	settings := v1.Group("/settings")
	{
		settings.GET("", settingsHandler.GetSettings)
		settings.PUT("", settingsHandler.UpdateSettings)
		settings.POST("/reset", settingsHandler.ResetSettings)
	}

	// 数据导出导入
	data := v1.Group("/data")
	{
		data.GET("/export", dataHandler.Export)
		data.POST("/import", dataHandler.Import)
		data.POST("/cleanup", dataHandler.Cleanup)
		data.POST("/reset", dataHandler.Reset)
	}

	// 写作会话
	session := v1.Group("/session")
	{
		session.GET("", sessionHandler.Status)
		session.POST("/open", sessionHandler.Open)
		session.PUT("/draft", sessionHandler.UpdateDraft)
		session.POST("/flush", sessionHandler.Flush)
		session.POST("/close", sessionHandler.Close)
	}
}
