package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"poolpump/internal/service"
)

const (
	statusOK      = "ok"
	statusSuccess = "success"

	msgPumpStarted = "Pump started"
	msgPumpStopped = "Pump stopped"

	errInvalidBodyPref = "invalid body: "
	errGetStatus       = "failed to read pump status"
	errGetConfig       = "failed to read pump config"
)

// respondServiceError maps service errors onto the two HTTP error kinds:
// ValidationError (client fault, names the field and range) is a 400,
// anything else is a device/communication failure and becomes a 500 with
// the driver's error text.
func (h *Handler) respondServiceError(c *gin.Context, err error, logKey string) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		if h.log != nil {
			h.log.Infow(logKey, "field", vErr.Field, "reason", vErr.Reason)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		return
	}
	if h.log != nil {
		h.log.Errorw(logKey, "err", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// runRequest starts (true) or stops (false) the pump.
type runRequest struct {
	State *bool `json:"state" binding:"required"`
}

// controlRequest carries any subset of the pump's writable settings.
// Absent fields are left untouched on the device.
type controlRequest struct {
	State             *bool   `json:"state"`
	Speed             *int    `json:"speed"`
	Ramp              *int    `json:"ramp"`
	Celsius           *bool   `json:"celsius"`
	Fahrenheit        *bool   `json:"fahrenheit"`
	Contrast          *int    `json:"contrast"`
	Address           *int    `json:"address"`
	ID                *int    `json:"id"`
	AMPM              *bool   `json:"ampm"`
	MaxRPM            *int    `json:"max_rpm"`
	MinRPM            *int    `json:"min_rpm"`
	QuickRPM          *int    `json:"quick_rpm"`
	QuickTimer        []int   `json:"quick_timer"`
	PrimeEnable       *bool   `json:"prime_enable"`
	PrimeMaxTime      *int    `json:"prime_max_time"`
	PrimeSensitivity  *int    `json:"prime_sensitivity"`
	PrimeDelay        *int    `json:"prime_delay"`
	AntifreezeEnable  *bool   `json:"antifreeze_enable"`
	AntifreezeRPM     *int    `json:"antifreeze_rpm"`
	AntifreezeTemp    *int    `json:"antifreeze_temp"`
	SVRSRestartEnable *bool   `json:"svrs_restart_enable"`
	SVRSRestartTimer  *int    `json:"svrs_restart_timer"`
	TimeOutTimer      []int   `json:"time_out_timer"`
	RunningProgram    *int    `json:"running_program"`
	SelectedProgram   *int    `json:"selected_program"`
}

func (r controlRequest) params() service.ControlParams {
	return service.ControlParams{
		State:             r.State,
		Speed:             r.Speed,
		Ramp:              r.Ramp,
		Celsius:           r.Celsius,
		Fahrenheit:        r.Fahrenheit,
		Contrast:          r.Contrast,
		Address:           r.Address,
		ID:                r.ID,
		AMPM:              r.AMPM,
		MaxRPM:            r.MaxRPM,
		MinRPM:            r.MinRPM,
		QuickRPM:          r.QuickRPM,
		QuickTimer:        r.QuickTimer,
		PrimeEnable:       r.PrimeEnable,
		PrimeMaxTime:      r.PrimeMaxTime,
		PrimeSensitivity:  r.PrimeSensitivity,
		PrimeDelay:        r.PrimeDelay,
		AntifreezeEnable:  r.AntifreezeEnable,
		AntifreezeRPM:     r.AntifreezeRPM,
		AntifreezeTemp:    r.AntifreezeTemp,
		SVRSRestartEnable: r.SVRSRestartEnable,
		SVRSRestartTimer:  r.SVRSRestartTimer,
		TimeOutTimer:      r.TimeOutTimer,
		RunningProgram:    r.RunningProgram,
		SelectedProgram:   r.SelectedProgram,
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Pump status
// @Description  Live snapshot: run state, speed, watts, mode label, device clock.
// @Tags         pump
// @Produce      json
// @Success      200  {object}  models.PumpStatus
// @Failure      500  {object}  map[string]string
// @Router       /status [get]
func (h *Handler) getStatus(c *gin.Context) {
	st, err := h.services.Monitoring.Status(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "pump_status_failed")
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Pump configuration
// @Description  Full settings object plus datetime and 4 program summaries.
// @Tags         pump
// @Produce      json
// @Success      200  {object}  models.PumpConfig
// @Failure      500  {object}  map[string]string
// @Router       /config [get]
func (h *Handler) getConfig(c *gin.Context) {
	cfg, err := h.services.Monitoring.Config(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "pump_config_failed")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Start or stop the pump
// @Tags         pump
// @Accept       json
// @Produce      json
// @Param        body  body  runRequest  true  "true to start, false to stop"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /run [post]
func (h *Handler) runPump(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Control.Run(c.Request.Context(), *req.State); err != nil {
		h.respondServiceError(c, err, "pump_run_failed")
		return
	}
	msg := msgPumpStopped
	if *req.State {
		msg = msgPumpStarted
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "message": msg})
}

// @Summary      Stop the pump unconditionally
// @Tags         pump
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /stop [post]
func (h *Handler) stopPump(c *gin.Context) {
	if err := h.services.Control.Stop(c.Request.Context()); err != nil {
		h.respondServiceError(c, err, "pump_stop_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "message": msgPumpStopped})
}

// @Summary      Apply pump settings
// @Description  Any subset of settings; each is range-checked before any write goes to the device.
// @Tags         pump
// @Accept       json
// @Produce      json
// @Param        body  body  controlRequest  true  "Settings payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /control [post]
func (h *Handler) controlPump(c *gin.Context) {
	var req controlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Control.Apply(c.Request.Context(), req.params()); err != nil {
		h.respondServiceError(c, err, "pump_control_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess})
}
