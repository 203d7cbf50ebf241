package handler

import (
	"expense-api/internal/util"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

// Root describes the service.
func Root(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		util.Success(c, util.Response{
			"message":     "Welcome to the Personal Expense Tracker API",
			"version":     apiVersion,
			"environment": environment,
		})
	}
}

// Health is the liveness probe.
func Health(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		util.Success(c, util.Response{
			"status":      "healthy",
			"environment": environment,
		})
	}
}
