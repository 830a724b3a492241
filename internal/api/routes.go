package api

import (
	"io/fs"
	"net/http"
	"time"

	"sitegen/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints, the preview documents and the front-end.
// It must run before any other route is added so CORS applies everywhere.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {
	router.Use(cors.New(corsConfig()))

	router.HandleMethodNotAllowed = true
	router.NoMethod(h.MethodNotAllowed)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/generate-website", h.GenerateWebsite) // Generate a website from a prompt
		apiGroup.OPTIONS("/generate-website", h.Preflight)
	}

	// Sandboxed documents for the iframe and the pop-out window
	router.GET("/preview/:projectId", h.Preview)

	router.GET("/health", h.Health)

	static := web.Static()
	index, err := fs.ReadFile(static, "index.html")
	if err != nil {
		panic(err) // embedded at build time
	}
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	router.StaticFS("/static", http.FS(static))
}

// corsConfig allows any origin to call the generate endpoint.
func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:              []string{"Content-Type"},
		OptionsResponseStatusCode: http.StatusOK,
		MaxAge:                    12 * time.Hour,
	}
}
