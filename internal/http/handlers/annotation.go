package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/kikitori/kikitori-backend/internal/http/response"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
	"github.com/kikitori/kikitori-backend/internal/services"
)

type AnnotationHandler struct {
	log        *logger.Logger
	annotation services.AnnotationService
}

func NewAnnotationHandler(log *logger.Logger, annotation services.AnnotationService) *AnnotationHandler {
	return &AnnotationHandler{
		log:        log.With("handler", "AnnotationHandler"),
		annotation: annotation,
	}
}

type segmentPayload struct {
	Index     int            `json:"segment_index"`
	Text      string         `json:"text"`
	StartTime float64        `json:"start_time"`
	EndTime   float64        `json:"end_time"`
	Words     datatypes.JSON `json:"words"`
}

type addSegmentsRequest struct {
	Segments []segmentPayload `json:"segments" binding:"required"`
}

func (h *AnnotationHandler) AddSegments(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	var req addSegmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	inputs := make([]services.SegmentInput, 0, len(req.Segments))
	for _, s := range req.Segments {
		inputs = append(inputs, services.SegmentInput{
			Index:     s.Index,
			Text:      s.Text,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Words:     s.Words,
		})
	}
	created, err := h.annotation.AddSegments(c.Request.Context(), videoID, inputs)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "segments_add_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"segments": created})
}

func (h *AnnotationHandler) ListSegments(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	segments, err := h.annotation.GetSegments(c.Request.Context(), videoID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "segments_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"segments": segments})
}

type phrasePayload struct {
	Index           int            `json:"phrase_index"`
	Analysis        datatypes.JSON `json:"analysis" binding:"required"`
	SyncWords       datatypes.JSON `json:"sync_words"`
	SlowedAudioPath string         `json:"slowed_audio_path"`
}

type addPhrasesRequest struct {
	Phrases []phrasePayload `json:"phrases" binding:"required"`
}

func (h *AnnotationHandler) AddPhraseAnalyses(c *gin.Context) {
	segmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_segment_id", err)
		return
	}
	var req addPhrasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	inputs := make([]services.PhraseInput, 0, len(req.Phrases))
	for _, p := range req.Phrases {
		inputs = append(inputs, services.PhraseInput{
			Index:           p.Index,
			Analysis:        p.Analysis,
			SyncWords:       p.SyncWords,
			SlowedAudioPath: p.SlowedAudioPath,
		})
	}
	created, err := h.annotation.AddPhraseAnalyses(c.Request.Context(), segmentID, inputs)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "phrases_add_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"phrase_analyses": created})
}

// ListVideoPhrases returns every phrase analysis for the video in
// playback order (segment_index, then phrase_index). An unknown video
// yields an empty list.
func (h *AnnotationHandler) ListVideoPhrases(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	phrases, err := h.annotation.GetPhraseAnalysesForVideo(c.Request.Context(), videoID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "phrases_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"phrase_analyses": phrases})
}

type updatePhraseRequest struct {
	SlowedAudioPath *string        `json:"slowed_audio_path"`
	SyncWords       datatypes.JSON `json:"sync_words"`
}

func (h *AnnotationHandler) UpdatePhrase(c *gin.Context) {
	phraseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_phrase_id", err)
		return
	}
	var req updatePhraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	ctx := c.Request.Context()
	if req.SlowedAudioPath != nil {
		if err := h.annotation.SetSlowedAudio(ctx, phraseID, *req.SlowedAudioPath); err != nil {
			response.RespondError(c, http.StatusInternalServerError, "phrase_update_failed", err)
			return
		}
	}
	if req.SyncWords != nil {
		if err := h.annotation.SetPhraseSyncWords(ctx, phraseID, req.SyncWords); err != nil {
			response.RespondError(c, http.StatusInternalServerError, "phrase_update_failed", err)
			return
		}
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}
