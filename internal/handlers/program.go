package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"poolpump/internal/service"
)

// programRequest edits one of the 8 device-resident schedule slots.
type programRequest struct {
	ProgramID     int     `json:"program_id" binding:"required"`
	RPM           *int    `json:"rpm"`
	Mode          *string `json:"mode"` // MANUAL | EGG_TIMER | SCHEDULE | DISABLED
	ScheduleStart []int   `json:"schedule_start"`
	ScheduleEnd   []int   `json:"schedule_end"`
	EggTimer      []int   `json:"egg_timer"`
}

// @Summary      Edit a schedule slot
// @Description  Refused while the pump is running. A 400 means no write reached the device.
// @Tags         pump
// @Accept       json
// @Produce      json
// @Param        body  body  programRequest  true  "Program payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /program [post]
func (h *Handler) controlProgram(c *gin.Context) {
	var req programRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	params := service.ProgramParams{
		ProgramID:     req.ProgramID,
		RPM:           req.RPM,
		Mode:          req.Mode,
		ScheduleStart: req.ScheduleStart,
		ScheduleEnd:   req.ScheduleEnd,
		EggTimer:      req.EggTimer,
	}
	if err := h.services.Programs.Apply(c.Request.Context(), params); err != nil {
		h.respondServiceError(c, err, "pump_program_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess})
}
