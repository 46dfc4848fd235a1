package server

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed shell.html
var shellHTML []byte

func serveShell(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", shellHTML)
}
