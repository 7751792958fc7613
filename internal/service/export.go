// Package service 提供领域服务层
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"z-novel-studio/internal/domain/document"
	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
	"z-novel-studio/pkg/logger"
)

// ExportVersion 导出数据格式版本
const ExportVersion = "1.0"

// ExportEnvelope 导出数据信封
//
// 序列化为单层扁平 JSON：version 与 exportDate 两个元字段，
// 加上以文档名（去掉 .json 后缀）为键的原始文档内容。
// 文档内容以 RawMessage 原样携带，导出再导入可逐字节还原。
type ExportEnvelope struct {
	Version    string
	ExportDate time.Time
	Documents  map[string]json.RawMessage
}

// MarshalJSON 实现扁平信封序列化
func (e *ExportEnvelope) MarshalJSON() ([]byte, error) {
	flat := make(map[string]json.RawMessage, len(e.Documents)+2)
	for key, raw := range e.Documents {
		flat[key] = raw
	}

	version, err := json.Marshal(e.Version)
	if err != nil {
		return nil, err
	}
	flat["version"] = version

	exportDate, err := json.Marshal(e.ExportDate)
	if err != nil {
		return nil, err
	}
	flat["exportDate"] = exportDate

	return json.Marshal(flat)
}

// UnmarshalJSON 实现扁平信封反序列化
func (e *ExportEnvelope) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	if raw, ok := flat["version"]; ok {
		if err := json.Unmarshal(raw, &e.Version); err != nil {
			return err
		}
		delete(flat, "version")
	}
	if raw, ok := flat["exportDate"]; ok {
		if err := json.Unmarshal(raw, &e.ExportDate); err != nil {
			return err
		}
		delete(flat, "exportDate")
	}
	e.Documents = flat
	return nil
}

// ImportReport 导入结果
type ImportReport struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// CleanupReport 清理结果
type CleanupReport struct {
	Removed []string `json:"removed"`
}

// DataService 数据导出、导入与清理服务
type DataService struct {
	store    *Store
	projects *ProjectService
}

// NewDataService 创建数据服务
func NewDataService(store *Store, projects *ProjectService) *DataService {
	return &DataService{store: store, projects: projects}
}

// documentKey 文档名到信封键的映射
//
// JSON 文档去掉 .json 后缀，封面文本去掉 .txt 后缀。
func documentKey(name string) string {
	if strings.HasSuffix(name, ".json") {
		return strings.TrimSuffix(name, ".json")
	}
	return strings.TrimSuffix(name, ".txt")
}

// keyToDocument 信封键到文档名的映射
func keyToDocument(key string) string {
	if strings.HasSuffix(key, "_cover") {
		return key + ".txt"
	}
	return key + ".json"
}

// Export 打包全部项目数据
//
// 信封只收纳当前索引可达的文档，孤儿文档与封面备份不随导出走。
func (s *DataService) Export(ctx context.Context) (*ExportEnvelope, error) {
	env := &ExportEnvelope{
		Version:    ExportVersion,
		ExportDate: time.Now(),
		Documents:  map[string]json.RawMessage{},
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	names := []string{document.Projects, document.Settings, document.CurrentProject}
	for _, p := range projects {
		names = append(names,
			document.Chapters(p.ID),
			document.Volumes(p.ID),
			document.Characters(p.ID),
			document.Outlines(p.ID),
			document.World(p.ID),
			document.WorldLegacy(p.ID),
			document.Stats(p.ID),
			document.Current(p.ID),
			document.Cover(p.ID),
		)
	}

	for _, name := range names {
		raw, err := s.store.ReadText(ctx, name)
		if err != nil {
			if errors.IsCode(err, errors.CodeStorageError) {
				return nil, err
			}
			continue
		}
		if strings.HasSuffix(name, ".txt") {
			encoded, err := json.Marshal(raw)
			if err != nil {
				return nil, err
			}
			env.Documents[documentKey(name)] = encoded
			continue
		}
		env.Documents[documentKey(name)] = json.RawMessage(raw)
	}

	// 空容器也带空索引，信封的格式校验以索引存在为前提
	if _, ok := env.Documents[documentKey(document.Projects)]; !ok {
		env.Documents[documentKey(document.Projects)] = json.RawMessage("[]")
	}
	return env, nil
}

// projectKeySuffixes 信封键里项目文档的后缀集合，长的变体（world_items）在前
var projectKeySuffixes = []string{
	"_chapters", "_volumes", "_characters", "_outlines",
	"_world_items", "_world", "_current", "_cover",
}

// projectIDOfKey 从信封键解析所属项目 id，全局文档返回空串
func projectIDOfKey(key string) string {
	if strings.HasPrefix(key, "writing_stats_") {
		return strings.TrimPrefix(key, "writing_stats_")
	}
	if !strings.HasPrefix(key, "project_") {
		return ""
	}
	rest := strings.TrimPrefix(key, "project_")
	for _, suffix := range projectKeySuffixes {
		if strings.HasSuffix(rest, suffix) {
			return strings.TrimSuffix(rest, suffix)
		}
	}
	return ""
}

// Import 解包并写入导出数据
//
// 先整体校验格式再落任何一笔写入。项目按 id 合并进现有索引：
// 已存在同 id 项目时默认整个项目（含全部从属文档）跳过，不做文档级
// 合并；overwrite 为真时整体覆盖。导入完成后整体清空缓存。
func (s *DataService) Import(ctx context.Context, data []byte, overwrite bool) (*ImportReport, error) {
	var env ExportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, errors.CodeImportFormat, "import data is not valid JSON")
	}
	if env.Version == "" {
		return nil, errors.New(errors.CodeImportFormat, "import data missing version field")
	}
	if env.ExportDate.IsZero() {
		return nil, errors.New(errors.CodeImportFormat, "import data missing exportDate field")
	}

	projectsKey := documentKey(document.Projects)
	raw, ok := env.Documents[projectsKey]
	if !ok {
		return nil, errors.New(errors.CodeImportFormat, "import data missing projects index")
	}
	var incoming []*entity.Project
	if err := json.Unmarshal(raw, &incoming); err != nil {
		return nil, errors.Wrap(err, errors.CodeImportFormat, "import data has malformed projects index")
	}

	existing, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	existingIDs := make(map[string]bool, len(existing))
	for _, p := range existing {
		existingIDs[p.ID] = true
	}

	merged := make([]*entity.Project, len(existing))
	copy(merged, existing)
	changed := false
	for _, p := range incoming {
		if !existingIDs[p.ID] {
			merged = append(merged, p)
			changed = true
			continue
		}
		if !overwrite {
			continue
		}
		for i, cur := range merged {
			if cur.ID == p.ID {
				merged[i] = p
			}
		}
		changed = true
	}

	report := &ImportReport{Imported: []string{}, Skipped: []string{}}
	for key, raw := range env.Documents {
		if key == projectsKey {
			continue
		}
		name := keyToDocument(key)

		if pid := projectIDOfKey(key); pid != "" {
			if !overwrite && existingIDs[pid] {
				report.Skipped = append(report.Skipped, name)
				continue
			}
		} else if !overwrite {
			// 全局文档（settings、current_project）只在缺失时写入
			exists, err := s.store.Exists(ctx, name)
			if err != nil {
				return nil, err
			}
			if exists {
				report.Skipped = append(report.Skipped, name)
				continue
			}
		}

		content := string(raw)
		if strings.HasSuffix(name, ".txt") {
			if err := json.Unmarshal(raw, &content); err != nil {
				return nil, errors.Wrap(err, errors.CodeImportFormat, "import data has malformed document "+name)
			}
		}
		if err := s.store.WriteText(ctx, name, content); err != nil {
			return nil, err
		}
		report.Imported = append(report.Imported, name)
	}

	if changed {
		if len(existing) == 0 {
			// 干净导入直接落原始字节，保持逐字节还原
			if err := s.store.WriteText(ctx, document.Projects, string(env.Documents[projectsKey])); err != nil {
				return nil, err
			}
		} else if err := WriteJSON(ctx, s.store, document.Projects, "", merged); err != nil {
			return nil, err
		}
		report.Imported = append(report.Imported, document.Projects)
	} else if len(incoming) > 0 {
		report.Skipped = append(report.Skipped, document.Projects)
	}

	s.store.Cache().Clear()
	logger.Info(ctx, "import completed",
		"imported", len(report.Imported), "skipped", len(report.Skipped))
	return report, nil
}

// Cleanup 清理索引不可达的孤儿文档
//
// 尽力而为：单个文档删除失败只记日志，不中断整轮清理。
func (s *DataService) Cleanup(ctx context.Context) (*CleanupReport, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	reachable := map[string]bool{
		document.Projects:       true,
		document.Settings:       true,
		document.CurrentProject: true,
	}
	coverPrefixes := make([]string, 0, len(projects))
	for _, p := range projects {
		for _, name := range document.ProjectScoped(p.ID) {
			reachable[name] = true
		}
		coverPrefixes = append(coverPrefixes, strings.TrimSuffix(document.Cover(p.ID), ".txt")+"_")
	}

	names, err := s.store.List(ctx, "")
	if err != nil {
		return nil, err
	}

	report := &CleanupReport{Removed: []string{}}
	for _, name := range names {
		if reachable[name] || isCoverBackupOf(name, coverPrefixes) {
			continue
		}
		if err := s.store.Delete(ctx, name); err != nil {
			logger.Warn(ctx, "failed to remove orphan document",
				"document", name, "error", err.Error())
			continue
		}
		report.Removed = append(report.Removed, name)
	}
	return report, nil
}

// isCoverBackupOf 检查文档是否为存活项目的封面备份
func isCoverBackupOf(name string, coverPrefixes []string) bool {
	if !strings.HasSuffix(name, ".bak.txt") {
		return false
	}
	for _, prefix := range coverPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Reset 删除全部文档并清空缓存
func (s *DataService) Reset(ctx context.Context) error {
	names, err := s.store.List(ctx, "")
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := s.store.Delete(ctx, name); err != nil {
			return err
		}
	}
	s.store.Cache().Clear()
	logger.Info(ctx, "all data reset", "documents", len(names))
	return nil
}
