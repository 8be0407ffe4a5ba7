package util

import "github.com/gin-gonic/gin"

// Message 统一成功返回 {"message": ...}
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// Error 统一错误返回 {"error": ...}
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ErrorList returns every violated validation rule in one response,
// {"errors": [...]}.
func ErrorList(c *gin.Context, status int, msgs []string) {
	c.JSON(status, gin.H{"errors": msgs})
}
