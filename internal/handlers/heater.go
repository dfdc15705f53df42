package handlers

import (
	"errors"
	"net/http"

	"heatman/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errReadStatus      = "failed to read heater status"
	errSaveConfig      = "failed to save configuration"
	errInvalidBodyPref = "invalid body: "
	errInvalidQuery    = "invalid query: "
)

type statusQuery struct {
	IncludeConfig bool `form:"include_config"`
}

// ConfigRequest is the full replacement configuration accepted by PATCH /.
// co2_target may be null to disable the CO2 condition.
type ConfigRequest struct {
	MasterSwitch *bool    `json:"master_switch" binding:"required" example:"true"`
	Force        *bool    `json:"force" binding:"required" example:"false"`
	TargetTemp   *float64 `json:"target_temp" binding:"required" example:"21.5"`
	CO2Target    *int     `json:"co2_target" binding:"omitempty,gte=0" example:"500"`
}

func (r ConfigRequest) toModel() models.HeaterConfig {
	return models.HeaterConfig{
		MasterSwitch: *r.MasterSwitch,
		Force:        *r.Force,
		TargetTemp:   *r.TargetTemp,
		CO2Target:    r.CO2Target,
	}
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

// @Summary      Heater status
// @Description  Live room reading and heater output. Config is included on request.
// @Tags         heater
// @Produce      json
// @Param        include_config  query  bool  false  "include the active configuration"
// @Success      200  {object}  response{data=models.HeaterStatus}
// @Failure      400  {object}  response
// @Failure      502  {object}  response
// @Router       / [get]
func (h *Handler) getHeater(c *gin.Context) {
	var q statusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, errInvalidQuery+err.Error())
		return
	}

	st, err := h.services.Status(c.Request.Context(), q.IncludeConfig)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errReadStatus, "status_read_failed", err)
		return
	}
	respondOK(c, http.StatusOK, st)
}

// @Summary      Replace configuration
// @Description  Validates, persists and applies a full configuration, then reconciles immediately.
// @Tags         heater
// @Accept       json
// @Produce      json
// @Param        body  body  ConfigRequest  true  "Heater configuration"
// @Success      200  {object}  response{data=models.HeaterStatus}
// @Failure      400  {object}  response
// @Failure      401  {object}  response
// @Failure      500  {object}  response
// @Router       / [patch]
// @Security     BearerAuth
func (h *Handler) patchHeater(c *gin.Context) {
	var req ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errInvalidBodyPref+err.Error())
		return
	}

	ctx := c.Request.Context()
	cfg, err := h.services.UpdateConfig(ctx, req.toModel())
	if err != nil {
		if errors.Is(err, models.ErrInvalidConfig) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveConfig, "config_save_failed", err)
		return
	}

	h.respondWithConfigAndStatus(c, cfg)
}

// Respond with the stored config and include live status if available (best-effort).
func (h *Handler) respondWithConfigAndStatus(c *gin.Context, cfg models.HeaterConfig) {
	st, err := h.services.Status(c.Request.Context(), false)
	if err != nil {
		if h.log != nil {
			h.log.Warnw("status_after_patch_failed", "err", err, "request_id", c.GetString(requestIDKey))
		}
		respondOK(c, http.StatusOK, gin.H{"config": cfg})
		return
	}
	st.Config = &cfg
	respondOK(c, http.StatusOK, st)
}
