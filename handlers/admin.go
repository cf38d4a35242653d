package handlers

import (
	"net/http"

	scheduleRepo "detailify/database/repository/schedule"
	"detailify/models"
	"detailify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler manages the working-hours schedule.
type AdminHandler struct {
	Schedule scheduleRepo.ScheduleStore
	Logger   *zap.Logger
}

func NewAdminHandler(schedule scheduleRepo.ScheduleStore, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Schedule: schedule, Logger: logger}
}

// GetWorkingHours lists every configured rule, active or not.
func (h *AdminHandler) GetWorkingHours(c *gin.Context) {
	rules, err := h.Schedule.GetAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to load working hours", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internalError", "could not load working hours")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// UpsertWorkingHours creates or replaces the rule for one day of the week.
func (h *AdminHandler) UpsertWorkingHours(c *gin.Context) {
	var rule models.WorkingHoursRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
		utils.JSONError(c, http.StatusUnprocessableEntity, "badDay", "dayOfWeek must be 0 (Sunday) through 6 (Saturday)")
		return
	}
	if rule.SlotDurationMinutes <= 0 {
		utils.JSONError(c, http.StatusUnprocessableEntity, "badDuration", "slotDurationMinutes must be positive")
		return
	}
	if rule.MaxBookingsPerSlot <= 0 {
		utils.JSONError(c, http.StatusUnprocessableEntity, "badCapacity", "maxBookingsPerSlot must be positive")
		return
	}

	if err := h.Schedule.Upsert(c.Request.Context(), rule); err != nil {
		h.Logger.Error("failed to save working hours", zap.Int("dayOfWeek", rule.DayOfWeek), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internalError", "could not save working hours")
		return
	}

	h.Logger.Info("working hours updated",
		zap.Int("dayOfWeek", rule.DayOfWeek),
		zap.Bool("active", rule.IsActive))
	c.JSON(http.StatusOK, rule)
}
