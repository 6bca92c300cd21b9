package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/kikitori/kikitori-backend/internal/http/response"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
	"github.com/kikitori/kikitori-backend/internal/services"
)

type VideoHandler struct {
	log          *logger.Logger
	videoService services.VideoService
}

func NewVideoHandler(log *logger.Logger, videoService services.VideoService) *VideoHandler {
	return &VideoHandler{
		log:          log.With("handler", "VideoHandler"),
		videoService: videoService,
	}
}

type registerVideoRequest struct {
	SourceURL string `json:"source_url" binding:"required"`
	Title     string `json:"title"`
}

func (h *VideoHandler) RegisterVideo(c *gin.Context) {
	var req registerVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	v, created, err := h.videoService.Register(c.Request.Context(), req.SourceURL, req.Title)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "video_register_failed", err)
		return
	}
	payload := gin.H{"video": v, "created": created}
	if created {
		response.RespondCreated(c, payload)
		return
	}
	response.RespondOK(c, payload)
}

func (h *VideoHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "video_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"videos": videos})
}

func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	v, err := h.videoService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "video_get_failed", err)
		return
	}
	if v == nil {
		response.RespondError(c, http.StatusNotFound, "video_not_found", fmt.Errorf("video %s not found", id))
		return
	}
	response.RespondOK(c, gin.H{"video": v})
}

type attachTranscriptRequest struct {
	TranscriptText   string         `json:"transcript_text"`
	RawTranscription datatypes.JSON `json:"raw_transcription"`
	SyncWords        datatypes.JSON `json:"sync_words"`
	AudioPath        string         `json:"audio_path"`
	Debug            datatypes.JSON `json:"debug"`
}

func (h *VideoHandler) AttachTranscript(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	var req attachTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	err = h.videoService.AttachTranscript(c.Request.Context(), id, services.TranscriptInput{
		TranscriptText:   req.TranscriptText,
		RawTranscription: req.RawTranscription,
		SyncWords:        req.SyncWords,
		AudioPath:        req.AudioPath,
		Debug:            req.Debug,
	})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "transcript_attach_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}

type updateVideoRequest struct {
	Title     *string `json:"title"`
	AudioPath *string `json:"audio_path"`
	DataDir   *string `json:"data_dir"`
}

func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	var req updateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	err = h.videoService.UpdateMetadata(c.Request.Context(), id, services.VideoMetadataInput{
		Title:     req.Title,
		AudioPath: req.AudioPath,
		DataDir:   req.DataDir,
	})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "video_update_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}

func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	dir, err := h.videoService.Delete(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "video_delete_failed", err)
		return
	}
	h.log.Info("Video deleted", "video_id", id, "data_dir", dir)
	response.RespondOK(c, gin.H{"deleted": dir != "", "data_dir": dir})
}
