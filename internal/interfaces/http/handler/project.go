// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/internal/service"
	"z-novel-studio/pkg/logger"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// ListProjects 获取项目列表
// @Summary 获取项目列表
// @Description 获取全部项目，最近修改的在前
// @Tags Projects
// @Produce json
// @Success 200 {object} dto.Response[[]entity.Project]
// @Router /v1/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()

	projects, err := h.projects.List(ctx)
	if err != nil {
		logger.Error(ctx, "failed to list projects", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, projects)
}

// GetProject 获取项目详情
// @Summary 获取项目详情
// @Tags Projects
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[entity.Project]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := h.projects.Get(ctx, c.Param("pid"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, project)
}

// CreateProject 创建项目
// @Summary 创建项目
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body dto.CreateProjectRequest true "项目信息"
// @Success 201 {object} dto.Response[entity.Project]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, err := h.projects.Create(ctx, req.Name, req.Type, req.Description, req.TargetWords)
	if err != nil {
		logger.Error(ctx, "failed to create project", err)
		dto.RespondError(c, err)
		return
	}
	dto.Created(c, project)
}

// UpdateProject 更新项目
// @Summary 更新项目
// @Tags Projects
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.UpdateProjectRequest true "变更字段"
// @Success 200 {object} dto.Response[entity.Project]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, err := h.projects.Update(ctx, c.Param("pid"), service.ProjectPatch{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		TargetWords: req.TargetWords,
		Status:      req.Status,
		Settings:    req.Settings,
	})
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, project)
}

// DeleteProject 删除项目
// @Summary 删除项目及其全部从属数据
// @Tags Projects
// @Param pid path string true "项目 ID"
// @Success 204
// @Router /v1/projects/{pid} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.projects.Delete(ctx, c.Param("pid")); err != nil {
		logger.Error(ctx, "failed to delete project", err)
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}

// RefreshWordCount 刷新项目字数汇总
// @Summary 以章节内容为准刷新项目字数
// @Tags Projects
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[entity.Project]
// @Router /v1/projects/{pid}/wordcount/refresh [post]
func (h *ProjectHandler) RefreshWordCount(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := h.projects.RefreshWordCount(ctx, c.Param("pid"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, project)
}

// GetCover 获取项目封面
// @Summary 获取项目封面
// @Tags Projects
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.CoverResponse]
// @Router /v1/projects/{pid}/cover [get]
func (h *ProjectHandler) GetCover(c *gin.Context) {
	ctx := c.Request.Context()

	cover, err := h.projects.GetCover(ctx, c.Param("pid"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, dto.CoverResponse{Cover: cover})
}

// SetCover 设置项目封面
// @Summary 设置项目封面，旧封面按备份策略保留
// @Tags Projects
// @Accept json
// @Param pid path string true "项目 ID"
// @Param body body dto.SetCoverRequest true "封面内容"
// @Success 204
// @Router /v1/projects/{pid}/cover [put]
func (h *ProjectHandler) SetCover(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.projects.SetCover(ctx, c.Param("pid"), req.Cover); err != nil {
		logger.Error(ctx, "failed to set project cover", err)
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}

// GetCurrentProject 获取当前项目指针
// @Summary 获取最近打开的项目
// @Tags Projects
// @Produce json
// @Success 200 {object} dto.Response[dto.CurrentProjectResponse]
// @Router /v1/projects/current [get]
func (h *ProjectHandler) GetCurrentProject(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, err := h.projects.GetCurrent(ctx)
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, dto.CurrentProjectResponse{ProjectID: projectID})
}

// SetCurrentProject 设置当前项目指针
// @Summary 设置最近打开的项目，空 ID 表示清除
// @Tags Projects
// @Accept json
// @Param body body dto.SetCurrentProjectRequest true "项目指针"
// @Success 204
// @Router /v1/projects/current [put]
func (h *ProjectHandler) SetCurrentProject(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetCurrentProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.projects.SetCurrent(ctx, req.ProjectID); err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}

// GetCurrentChapter 获取项目当前章节指针
// @Summary 获取项目内最近打开的章节
// @Tags Projects
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.CurrentChapterResponse]
// @Router /v1/projects/{pid}/current-chapter [get]
func (h *ProjectHandler) GetCurrentChapter(c *gin.Context) {
	ctx := c.Request.Context()

	chapterID, err := h.projects.GetCurrentChapter(ctx, c.Param("pid"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, dto.CurrentChapterResponse{ChapterID: chapterID})
}

// SetCurrentChapter 设置项目当前章节指针
// @Summary 设置项目内最近打开的章节
// @Tags Projects
// @Accept json
// @Param pid path string true "项目 ID"
// @Param body body dto.SetCurrentChapterRequest true "章节指针"
// @Success 204
// @Router /v1/projects/{pid}/current-chapter [put]
func (h *ProjectHandler) SetCurrentChapter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetCurrentChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.projects.SetCurrentChapter(ctx, c.Param("pid"), req.ChapterID); err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}
