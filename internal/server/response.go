package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope every endpoint returns.
type Response struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Data: data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Message: "Resource created successfully", Data: data})
}

func message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Response{Message: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Error: msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Error: msg})
}

func badGateway(c *gin.Context, msg string) {
	c.JSON(http.StatusBadGateway, Response{Error: msg})
}

func internalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Response{Error: msg})
}
