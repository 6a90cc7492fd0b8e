package line

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the LINE callback endpoint.
func RegisterRoutes(r gin.IRoutes, h *handler) {
	r.POST("/callback", h.Callback)
}
