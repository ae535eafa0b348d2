package handlers

import (
	"errors"
	"net/http"

	"heater_control/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusStarted = "started"
	statusStopped = "stopped"

	errStartLoop = "failed to start control loop"
	errStopLoop  = "failed to stop control loop"
	errGetState  = "failed to load state"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	st, err := h.services.Monitoring.GetState(ctx)
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Start control loop
// @Description  Arms the polling loop; the FSM restarts from IDLE.
// @Tags         heater
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/heater/start [post]
// @Security     BearerAuth
func (h *Handler) startLoop(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Control.Start(ctx); err != nil {
		if errors.Is(err, service.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errStartLoop, "loop_start_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStarted)
}

// @Summary      Stop control loop
// @Description  Disarms the polling loop and forces the heater off.
// @Tags         heater
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/heater/stop [post]
// @Security     BearerAuth
func (h *Handler) stopLoop(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Control.Stop(ctx); err != nil {
		if errors.Is(err, service.ErrNotRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errStopLoop, "loop_stop_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStopped)
}

// @Summary      Get heater state
// @Tags         heater
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/heater/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "heater_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get control-law configuration
// @Description  Thresholds are fixed at construction; there is no runtime reconfiguration.
// @Tags         heater
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/heater/config [get]
// @Security     BearerAuth
func (h *Handler) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg)
}
