// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/internal/service"
	"z-novel-studio/pkg/errors"
	"z-novel-studio/pkg/logger"
)

// CharacterHandler 角色处理器
type CharacterHandler struct {
	characters *service.CharacterService
}

// NewCharacterHandler 创建角色处理器
func NewCharacterHandler(characters *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{characters: characters}
}

// ListCharacters 获取角色列表
// @Summary 获取项目角色列表，支持 keyword 模糊检索
// @Tags Characters
// @Produce json
// @Param pid path string true "项目 ID"
// @Param keyword query string false "检索关键字"
// @Success 200 {object} dto.Response[[]entity.Character]
// @Router /v1/projects/{pid}/characters [get]
func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	ctx := c.Request.Context()

	characters, err := h.characters.Search(ctx, c.Param("pid"), c.Query("keyword"))
	if err != nil {
		logger.Error(ctx, "failed to list characters", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, characters)
}

// GetCharacter 获取角色详情
// @Summary 获取角色详情
// @Tags Characters
// @Produce json
// @Param pid path string true "项目 ID"
// @Param chid path string true "角色 ID"
// @Success 200 {object} dto.Response[entity.Character]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/characters/{chid} [get]
func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	ctx := c.Request.Context()

	character, err := h.characters.Get(ctx, c.Param("pid"), c.Param("chid"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	if character == nil {
		dto.RespondError(c, errors.New(errors.CodeItemNotFound, "character not found"))
		return
	}
	dto.Success(c, character)
}

// CreateCharacter 创建角色
// @Summary 创建角色
// @Tags Characters
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.CreateCharacterRequest true "角色信息"
// @Success 201 {object} dto.Response[entity.Character]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/characters [post]
func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	character, err := h.characters.Create(ctx, c.Param("pid"), req.Name, req.Role)
	if err != nil {
		logger.Error(ctx, "failed to create character", err)
		dto.RespondError(c, err)
		return
	}
	dto.Created(c, character)
}

// UpdateCharacter 更新角色
// @Summary 更新角色
// @Tags Characters
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param chid path string true "角色 ID"
// @Param body body dto.UpdateCharacterRequest true "变更字段"
// @Success 200 {object} dto.Response[entity.Character]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/characters/{chid} [put]
func (h *CharacterHandler) UpdateCharacter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	character, err := h.characters.Update(ctx, c.Param("pid"), c.Param("chid"), service.CharacterPatch{
		Name:        req.Name,
		Role:        req.Role,
		Description: req.Description,
		Tags:        req.Tags,
		Age:         req.Age,
		Gender:      req.Gender,
		Avatar:      req.Avatar,
	})
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, character)
}

// DeleteCharacter 删除角色
// @Summary 删除角色
// @Tags Characters
// @Param pid path string true "项目 ID"
// @Param chid path string true "角色 ID"
// @Success 204
// @Router /v1/projects/{pid}/characters/{chid} [delete]
func (h *CharacterHandler) DeleteCharacter(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.characters.Delete(ctx, c.Param("pid"), c.Param("chid")); err != nil {
		logger.Error(ctx, "failed to delete character", err)
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}
