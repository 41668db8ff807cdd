package handlers

import (
	"errors"
	"net/http"

	"pumpjack_simulator/internal/engine"
	"pumpjack_simulator/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK        = "ok"
	statusStarted   = "started"
	statusStopped   = "stopped"
	statusTargetSet = "target_set"

	errStartPump       = "failed to start pump"
	errStopPump        = "failed to stop pump"
	errSetTarget       = "failed to set target"
	errGetState        = "failed to load state"
	errGetLimits       = "failed to load limits"
	errInvalidBodyPref = "invalid body: "
)

// logAndJSONError logs err under logKey and answers with userMsg only.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// logCommand records which operator issued a control command.
func (h *Handler) logCommand(c *gin.Context, command string, kv ...interface{}) {
	fields := append([]interface{}{"command", command, "operator_id", operatorID(c)}, kv...)
	h.log.Infow("pump_command", fields...)
}

// respondWithStatusAndState answers 200 with status, extra and the current
// state when it can be read.
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	st, err := h.services.Monitoring.GetState(ctx)
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// Request DTO for setting a target.
type targetRequest struct {
	Parameter string   `json:"parameter" binding:"required"`
	Value     *float64 `json:"value" binding:"required"`
}

// SetTargetRequest is an exported model for Swagger docs of the setTarget payload.
type SetTargetRequest struct {
	// Setpoint to change. Allowed: spm, production, runtime (optionally prefixed with target_)
	Parameter string `json:"parameter" example:"spm"`
	// New value: strokes/min, bbl/day or hours/day (0..24)
	Value float64 `json:"value" example:"6.5"`
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

// @Summary      Start pump
// @Tags         pump
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pump/start [post]
// @Security     BearerAuth
func (h *Handler) startPump(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Pump.Start(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStartPump, "pump_start_failed", err,
			"operator_id", operatorID(c))
		return
	}
	h.logCommand(c, "start")
	h.respondWithStatusAndState(c, statusStarted, gin.H{})
}

// @Summary      Stop pump
// @Tags         pump
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pump/stop [post]
// @Security     BearerAuth
func (h *Handler) stopPump(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Pump.Stop(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStopPump, "pump_stop_failed", err,
			"operator_id", operatorID(c))
		return
	}
	h.logCommand(c, "stop")
	h.respondWithStatusAndState(c, statusStopped, gin.H{})
}

// @Summary      Set target
// @Description  Changes one setpoint. Unknown parameters and negative or non-finite values are rejected.
// @Tags         pump
// @Accept       json
// @Produce      json
// @Param        body  body   SetTargetRequest  true  "Target payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/pump/targets [post]
// @Security     BearerAuth
func (h *Handler) setTarget(c *gin.Context) {
	var req targetRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	ctx := c.Request.Context()
	params := service.TargetParams{Parameter: req.Parameter, Value: *req.Value}
	if err := h.services.Pump.SetTarget(ctx, params); err != nil {
		if errors.Is(err, engine.ErrInvalidParameter) || errors.Is(err, engine.ErrInvalidValue) {
			h.log.Infow("pump_set_target_rejected", "err", err, "parameter", req.Parameter,
				"operator_id", operatorID(c))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSetTarget, "pump_set_target_failed", err,
			"parameter", req.Parameter, "operator_id", operatorID(c))
		return
	}
	h.logCommand(c, "set_target", "parameter", req.Parameter, "value", *req.Value)
	h.respondWithStatusAndState(c, statusTargetSet, gin.H{"parameter": req.Parameter, "value": *req.Value})
}

// @Summary      Get pump state
// @Tags         pump
// @Produce      json
// @Success      200  {object}  models.StoredState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pump/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "pump_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get operating limits
// @Tags         pump
// @Produce      json
// @Success      200  {object}  map[string]models.Limit
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pump/limits [get]
// @Security     BearerAuth
func (h *Handler) getLimits(c *gin.Context) {
	limits, err := h.services.Monitoring.GetLimits(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetLimits, "pump_get_limits_failed", err)
		return
	}
	c.JSON(http.StatusOK, limits)
}
