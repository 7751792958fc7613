// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/internal/service"
	"z-novel-studio/pkg/errors"
	"z-novel-studio/pkg/logger"
)

// ChapterHandler 章节处理器
type ChapterHandler struct {
	chapters *service.ChapterService
}

// NewChapterHandler 创建章节处理器
func NewChapterHandler(chapters *service.ChapterService) *ChapterHandler {
	return &ChapterHandler{chapters: chapters}
}

// ListChapters 获取章节列表
// @Summary 获取项目章节列表
// @Tags Chapters
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]entity.Chapter]
// @Router /v1/projects/{pid}/chapters [get]
func (h *ChapterHandler) ListChapters(c *gin.Context) {
	ctx := c.Request.Context()

	chapters, err := h.chapters.List(ctx, c.Param("pid"))
	if err != nil {
		logger.Error(ctx, "failed to list chapters", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, chapters)
}

// GetChapter 获取章节详情
// @Summary 获取章节详情
// @Tags Chapters
// @Produce json
// @Param pid path string true "项目 ID"
// @Param cid path string true "章节 ID"
// @Success 200 {object} dto.Response[entity.Chapter]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/chapters/{cid} [get]
func (h *ChapterHandler) GetChapter(c *gin.Context) {
	ctx := c.Request.Context()

	chapter, err := h.chapters.Get(ctx, c.Param("pid"), c.Param("cid"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	if chapter == nil {
		dto.RespondError(c, errors.New(errors.CodeChapterNotFound, "chapter not found"))
		return
	}
	dto.Success(c, chapter)
}

// CreateChapter 创建章节
// @Summary 创建章节，序号排在所属卷末尾
// @Tags Chapters
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.CreateChapterRequest true "章节信息"
// @Success 201 {object} dto.Response[entity.Chapter]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/chapters [post]
func (h *ChapterHandler) CreateChapter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter, err := h.chapters.Create(ctx, c.Param("pid"), req.VolumeID, req.Title, req.Content)
	if err != nil {
		logger.Error(ctx, "failed to create chapter", err)
		dto.RespondError(c, err)
		return
	}
	dto.Created(c, chapter)
}

// UpdateChapter 更新章节
// @Summary 更新章节，内容变化时字数全量重算并计入写作统计
// @Tags Chapters
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param cid path string true "章节 ID"
// @Param body body dto.UpdateChapterRequest true "变更字段"
// @Success 200 {object} dto.Response[entity.Chapter]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/chapters/{cid} [put]
func (h *ChapterHandler) UpdateChapter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter, err := h.chapters.Update(ctx, c.Param("pid"), c.Param("cid"), service.ChapterPatch{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, chapter)
}

// DeleteChapter 删除章节
// @Summary 删除章节，所在卷分区重新编号
// @Tags Chapters
// @Param pid path string true "项目 ID"
// @Param cid path string true "章节 ID"
// @Success 204
// @Router /v1/projects/{pid}/chapters/{cid} [delete]
func (h *ChapterHandler) DeleteChapter(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.chapters.Delete(ctx, c.Param("pid"), c.Param("cid")); err != nil {
		logger.Error(ctx, "failed to delete chapter", err)
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}

// ReorderChapters 重排章节
// @Summary 在指定卷分区内按给定顺序重排章节
// @Tags Chapters
// @Accept json
// @Param pid path string true "项目 ID"
// @Param body body dto.ReorderChaptersRequest true "章节顺序"
// @Success 204
// @Router /v1/projects/{pid}/chapters/reorder [post]
func (h *ChapterHandler) ReorderChapters(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReorderChaptersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.chapters.Reorder(ctx, c.Param("pid"), req.VolumeID, req.ChapterIDs); err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}

// MoveChapter 章节移卷
// @Summary 把章节移入另一卷，两个分区各自重新编号
// @Tags Chapters
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param cid path string true "章节 ID"
// @Param body body dto.MoveChapterRequest true "目标卷"
// @Success 200 {object} dto.Response[entity.Chapter]
// @Router /v1/projects/{pid}/chapters/{cid}/move [post]
func (h *ChapterHandler) MoveChapter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MoveChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter, err := h.chapters.MoveToVolume(ctx, c.Param("pid"), c.Param("cid"), req.VolumeID)
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, chapter)
}
