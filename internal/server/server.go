// Package server exposes the subtitle extraction API over HTTP: the
// two JSON endpoints the frontend talks to, a fetch-history endpoint,
// and the embedded single-page frontend itself.
package server

import (
	"context"
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InvictusNavarchus/ytsubsdown/internal/youtube"
)

//go:embed web
var webFS embed.FS

// Extractor is the piece that actually talks to YouTube. The server
// only does request/response glue around it.
type Extractor interface {
	VideoInfo(ctx context.Context, rawURL string) (*youtube.VideoInfo, error)
	SubtitleSRT(ctx context.Context, track youtube.Track) (string, error)
}

// Options configure a Server.
type Options struct {
	Extractor Extractor
	// History is optional; when nil no fetch history is recorded and
	// the history endpoints return 404.
	History *HistoryDB
}

// Server wires the extraction backend into HTTP handlers.
type Server struct {
	engine    *gin.Engine
	extractor Extractor
	history   *HistoryDB
}

// New builds the gin engine with all routes registered.
func New(opts Options) *Server {
	s := &Server{
		extractor: opts.Extractor,
		history:   opts.History,
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), corsMiddleware())

	api := engine.Group("/api")
	api.POST("/get_video_info", s.handleGetVideoInfo)
	api.POST("/get_subtitles", s.handleGetSubtitles)
	if s.history != nil {
		api.GET("/history", s.handleHistory)
		api.DELETE("/history", s.handleClearHistory)
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	web, err := fs.Sub(webFS, "web")
	if err == nil {
		engine.StaticFileFS("/", "index.html", http.FS(web))
	}

	s.engine = engine
	return s
}

// Handler returns the root HTTP handler, for mounting in an
// http.Server or an httptest server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// corsMiddleware allows browser access from any origin, matching the
// headers the API has always sent.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
