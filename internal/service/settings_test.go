package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
)

func TestSettingsService_GetMissingReturnsDefaults(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	settings, err := c.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeSystem, settings.Theme)
	assert.Equal(t, "zh-CN", settings.Language)
	assert.True(t, settings.Backup.Enabled)
}

func TestSettingsService_UpdateValidatesTheme(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	theme := entity.ThemeDark
	settings, err := c.Settings.Update(ctx, SettingsPatch{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeDark, settings.Theme)
	assert.False(t, settings.LastModified.IsZero())

	bad := entity.Theme("neon")
	_, err = c.Settings.Update(ctx, SettingsPatch{Theme: &bad})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationFailed))

	// 校验失败不落盘
	settings, err = c.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeDark, settings.Theme)
}

func TestSettingsService_Reset(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	theme := entity.ThemeLight
	_, err := c.Settings.Update(ctx, SettingsPatch{Theme: &theme})
	require.NoError(t, err)

	settings, err := c.Settings.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeSystem, settings.Theme)

	settings, err = c.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeSystem, settings.Theme)
}
