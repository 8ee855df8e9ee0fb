package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/dispatch"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

const maxPayloadBytes = 1 << 20

type IPCHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewIPCHandler(dispatcher *dispatch.Dispatcher) *IPCHandler {
	return &IPCHandler{dispatcher: dispatcher}
}

// Call: POST /ipc/:method com o payload do método no corpo.
func (h *IPCHandler) Call(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadBytes)

	body, err := c.GetRawData()
	if err != nil {
		httperr.Write(c, http.StatusBadRequest, "invalid_request")
		return
	}

	status, env := h.dispatcher.Dispatch(
		c.Request.Context(),
		middleware.SessionFrom(c),
		c.Param("method"),
		body,
	)
	httpresp.Write(c, status, env)
}

// Methods lista os métodos registrados (diagnóstico da interface).
func (h *IPCHandler) Methods(c *gin.Context) {
	httpresp.OK(c, h.dispatcher.Methods())
}
