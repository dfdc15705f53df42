package handlers

import (
	"github.com/gin-gonic/gin"
)

// response is the envelope every API endpoint answers with.
type response struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

func respondOK(c *gin.Context, code int, data any) {
	c.JSON(code, response{Success: true, Data: data})
}

func respondError(c *gin.Context, code int, msg string) {
	c.JSON(code, response{Success: false, Error: &msg})
}

// Centralized error logging and response. Only userMsg reaches the client.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	respondError(c, httpCode, userMsg)
}
