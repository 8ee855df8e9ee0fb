package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope é a resposta uniforme de toda requisição da UI.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Failure(code, message string) Envelope {
	return Envelope{Error: &ErrorBody{Code: code, Message: message}}
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success(data))
}

func Write(c *gin.Context, status int, env Envelope) {
	c.JSON(status, env)
}
