// Package service 提供领域服务层
package service

import (
	"context"
	"strings"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/domain/document"
	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
)

// CharacterPatch 角色可更新字段，nil 表示不变
type CharacterPatch struct {
	Name        *string
	Role        *string
	Description *string
	Tags        *[]string
	Age         *string
	Gender      *string
	Avatar      *string
}

// CharacterService 角色服务
type CharacterService struct {
	list *ListService[*entity.Character]
}

// NewCharacterService 创建角色服务
func NewCharacterService(store *Store, cfg *config.Config) *CharacterService {
	list := NewListService(store, ListConfig[*entity.Character]{
		Name:     "character",
		FileName: document.Characters,
		CacheTTL: cfg.Cache.DefaultTTL,
		Less: func(a, b *entity.Character) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		},
		Validate: func(c *entity.Character) error {
			if c.Name == "" {
				return errors.New(errors.CodeValidationFailed, "character name is required")
			}
			return nil
		},
	})
	return &CharacterService{list: list}
}

// List 返回项目的全部角色，按创建时间排序
func (s *CharacterService) List(ctx context.Context, projectID string) ([]*entity.Character, error) {
	return s.list.List(ctx, projectID)
}

// Get 按 ID 查找角色，未找到时返回 nil
func (s *CharacterService) Get(ctx context.Context, projectID, characterID string) (*entity.Character, error) {
	return s.list.GetByID(ctx, projectID, characterID)
}

// Search 按名称、身份或标签模糊检索
func (s *CharacterService) Search(ctx context.Context, projectID, keyword string) ([]*entity.Character, error) {
	characters, err := s.list.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return characters, nil
	}

	matched := make([]*entity.Character, 0, len(characters))
	for _, c := range characters {
		if characterMatches(c, keyword) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func characterMatches(c *entity.Character, keyword string) bool {
	if strings.Contains(strings.ToLower(c.Name), keyword) ||
		strings.Contains(strings.ToLower(c.Role), keyword) ||
		strings.Contains(strings.ToLower(c.Description), keyword) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return true
		}
	}
	return false
}

// Create 创建新角色
func (s *CharacterService) Create(ctx context.Context, projectID, name, role string) (*entity.Character, error) {
	c := entity.NewCharacter(projectID, name)
	c.Role = role
	return s.list.Create(ctx, projectID, c)
}

// Update 应用补丁
func (s *CharacterService) Update(ctx context.Context, projectID, characterID string, patch CharacterPatch) (*entity.Character, error) {
	return s.list.Update(ctx, projectID, characterID, func(c *entity.Character) error {
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Role != nil {
			c.Role = *patch.Role
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		if patch.Tags != nil {
			c.Tags = *patch.Tags
		}
		if patch.Age != nil {
			c.Age = *patch.Age
		}
		if patch.Gender != nil {
			c.Gender = *patch.Gender
		}
		if patch.Avatar != nil {
			c.Avatar = *patch.Avatar
		}
		return nil
	})
}

// Delete 删除角色，删除不存在的角色视为成功
func (s *CharacterService) Delete(ctx context.Context, projectID, characterID string) error {
	return s.list.Delete(ctx, projectID, characterID)
}
