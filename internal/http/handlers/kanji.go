package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kikitori/kikitori-backend/internal/http/response"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
	"github.com/kikitori/kikitori-backend/internal/services"
)

type KanjiHandler struct {
	log   *logger.Logger
	kanji services.KanjiService
}

func NewKanjiHandler(log *logger.Logger, kanji services.KanjiService) *KanjiHandler {
	return &KanjiHandler{
		log:   log.With("handler", "KanjiHandler"),
		kanji: kanji,
	}
}

// ExtractKanji rebuilds the video's glossary from its stored phrase
// analyses. Safe to call repeatedly; earlier entries are never replaced.
func (h *KanjiHandler) ExtractKanji(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	n, err := h.kanji.ExtractForVideo(c.Request.Context(), videoID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "kanji_extract_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"characters": n})
}

func (h *KanjiHandler) ListKanji(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	entries, err := h.kanji.GetForVideo(c.Request.Context(), videoID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "kanji_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"kanji": entries})
}
