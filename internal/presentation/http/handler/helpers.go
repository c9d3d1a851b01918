package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetOperatorID extracts the operator ID from the Gin context
func GetOperatorID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get("operator_id")
	if !exists {
		return nil
	}
	operatorID, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &operatorID
}

// GetOperatorName extracts the operator display name from the Gin context
func GetOperatorName(c *gin.Context) string {
	name, exists := c.Get("operator_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// GetRegisterID extracts the till identifier set by the register middleware
func GetRegisterID(c *gin.Context) string {
	register, exists := c.Get("register_id")
	if !exists {
		return ""
	}
	return register.(string)
}
