package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"talentdash/internal/api/middleware"
	"talentdash/internal/export"
	"talentdash/internal/store"
)

// SettingsHandler serves the key/value configuration endpoints.
type SettingsHandler struct {
	store store.Store
}

// NewSettingsHandler builds the settings handler.
func NewSettingsHandler(st store.Store) *SettingsHandler {
	return &SettingsHandler{store: st}
}

// List returns all settings, with defaults filling any unset keys.
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.store.ListSettings(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list settings failed", slog.Any("error", err))
		Internal(c, "failed to list settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

type upsertSettingRequest struct {
	Key   string          `json:"key" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

// analysisCriteria mirrors the analysis_criteria setting document.
type analysisCriteria struct {
	KeywordsWeight   int `json:"keywords_weight"`
	ExperienceWeight int `json:"experience_weight"`
	EducationWeight  int `json:"education_weight"`
	SkillsWeight     int `json:"skills_weight"`
}

// Upsert writes one setting by key. The analysis_criteria weights must sum
// to 100; that check lives here and nowhere deeper, so direct store callers
// are not constrained by it.
func (h *SettingsHandler) Upsert(c *gin.Context) {
	var req upsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if req.Key == "analysis_criteria" {
		var criteria analysisCriteria
		if err := json.Unmarshal(req.Value, &criteria); err != nil {
			BadRequest(c, "analysis_criteria must be a weights object")
			return
		}
		sum := criteria.KeywordsWeight + criteria.ExperienceWeight + criteria.EducationWeight + criteria.SkillsWeight
		if sum != 100 {
			BadRequest(c, "analysis criteria weights must sum to 100")
			return
		}
	}

	setting, err := h.store.UpsertSetting(c.Request.Context(), req.Key, req.Value)
	if err != nil {
		middleware.LoggerFromContext(c).Error("upsert setting failed", slog.Any("error", err))
		Internal(c, "failed to save setting")
		return
	}
	c.JSON(http.StatusOK, setting)
}

// Reset restores every setting to its default value.
func (h *SettingsHandler) Reset(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.store.ResetSettings(ctx); err != nil {
		middleware.LoggerFromContext(c).Error("reset settings failed", slog.Any("error", err))
		Internal(c, "failed to reset settings")
		return
	}

	if _, err := h.store.LogActivity(ctx, "settings_reset", "Settings restored to defaults"); err != nil {
		middleware.LoggerFromContext(c).Warn("log settings activity failed", slog.Any("error", err))
	}

	settings, err := h.store.ListSettings(ctx)
	if err != nil {
		middleware.LoggerFromContext(c).Error("list settings failed", slog.Any("error", err))
		Internal(c, "failed to list settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Export downloads all settings as a JSON document.
func (h *SettingsHandler) Export(c *gin.Context) {
	settings, err := h.store.ListSettings(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list settings failed", slog.Any("error", err))
		Internal(c, "failed to export settings")
		return
	}

	data, err := export.SettingsJSON(settings)
	if err != nil {
		middleware.LoggerFromContext(c).Error("render settings export failed", slog.Any("error", err))
		Internal(c, "failed to export settings")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="settings.json"`)
	c.Data(http.StatusOK, "application/json", data)
}
