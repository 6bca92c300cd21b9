package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/kikitori/kikitori-backend/internal/http/handlers"
	httpMW "github.com/kikitori/kikitori-backend/internal/http/middleware"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	CORSOrigins []string

	ServiceTokenMiddleware *httpMW.ServiceTokenMiddleware

	HealthHandler     *httpH.HealthHandler
	VideoHandler      *httpH.VideoHandler
	AnnotationHandler *httpH.AnnotationHandler
	KanjiHandler      *httpH.KanjiHandler
	AudioHandler      *httpH.AudioHandler

	// Only set on the embedded engine, where the lexicon tables exist.
	LexiconHandler *httpH.LexiconHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Reads are public, like the bucket.
		if cfg.VideoHandler != nil {
			api.GET("/videos", cfg.VideoHandler.ListVideos)
			api.GET("/videos/:id", cfg.VideoHandler.GetVideo)
		}
		if cfg.AnnotationHandler != nil {
			api.GET("/videos/:id/segments", cfg.AnnotationHandler.ListSegments)
			api.GET("/videos/:id/phrases", cfg.AnnotationHandler.ListVideoPhrases)
		}
		if cfg.KanjiHandler != nil {
			api.GET("/videos/:id/kanji", cfg.KanjiHandler.ListKanji)
		}
		if cfg.AudioHandler != nil {
			api.GET("/audio/*key", cfg.AudioHandler.DownloadAudio)
		}
		if cfg.LexiconHandler != nil {
			api.GET("/phrases/:id/words", cfg.LexiconHandler.ListPhraseWords)
			api.GET("/phrases/:id/kanji", cfg.LexiconHandler.ListPhraseKanji)
		}
	}

	// Writes come from the processing pipeline only.
	protected := api.Group("/")
	{
		if cfg.ServiceTokenMiddleware != nil {
			protected.Use(cfg.ServiceTokenMiddleware.RequireServiceToken())
		}

		if cfg.VideoHandler != nil {
			protected.POST("/videos", cfg.VideoHandler.RegisterVideo)
			protected.PATCH("/videos/:id", cfg.VideoHandler.UpdateVideo)
			protected.PUT("/videos/:id/transcript", cfg.VideoHandler.AttachTranscript)
			protected.DELETE("/videos/:id", cfg.VideoHandler.DeleteVideo)
		}
		if cfg.AnnotationHandler != nil {
			protected.POST("/videos/:id/segments", cfg.AnnotationHandler.AddSegments)
			protected.POST("/segments/:id/phrases", cfg.AnnotationHandler.AddPhraseAnalyses)
			protected.PATCH("/phrases/:id", cfg.AnnotationHandler.UpdatePhrase)
		}
		if cfg.KanjiHandler != nil {
			protected.POST("/videos/:id/kanji/extract", cfg.KanjiHandler.ExtractKanji)
		}
		if cfg.AudioHandler != nil {
			protected.POST("/videos/:id/audio", cfg.AudioHandler.UploadAudio)
		}
		if cfg.LexiconHandler != nil {
			protected.POST("/phrases/:id/lexicon", cfg.LexiconHandler.RecordPhrase)
		}
	}

	return r
}
