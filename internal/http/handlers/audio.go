package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kikitori/kikitori-backend/internal/http/response"
	"github.com/kikitori/kikitori-backend/internal/platform/gcp"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
	"github.com/kikitori/kikitori-backend/internal/services"
)

// AudioHandler moves audio artifacts in and out of the bucket. Objects
// live under the owning video's data_dir so a video delete can purge
// them by prefix.
type AudioHandler struct {
	log          *logger.Logger
	videoService services.VideoService
	bucket       gcp.BucketService
}

func NewAudioHandler(log *logger.Logger, videoService services.VideoService, bucket gcp.BucketService) *AudioHandler {
	return &AudioHandler{
		log:          log.With("handler", "AudioHandler"),
		videoService: videoService,
		bucket:       bucket,
	}
}

func (h *AudioHandler) UploadAudio(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	v, err := h.videoService.GetByID(c.Request.Context(), videoID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "video_get_failed", err)
		return
	}
	if v == nil {
		response.RespondError(c, http.StatusNotFound, "video_not_found", fmt.Errorf("video %s not found", videoID))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	name := path.Base(fileHeader.Filename)
	if name == "" || name == "." || name == "/" {
		response.RespondError(c, http.StatusBadRequest, "invalid_filename", fmt.Errorf("unusable filename %q", fileHeader.Filename))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer file.Close()

	key := path.Join(v.DataDir, name)
	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.bucket.Upload(c.Request.Context(), key, contentType, fileHeader.Size, file); err != nil {
		status := http.StatusInternalServerError
		code := "audio_upload_failed"
		switch {
		case errors.Is(err, gcp.ErrObjectTooLarge):
			status = http.StatusRequestEntityTooLarge
			code = "object_too_large"
		case errors.Is(err, gcp.ErrContentTypeNotAllowed):
			status = http.StatusUnsupportedMediaType
			code = "content_type_not_allowed"
		}
		response.RespondError(c, status, code, err)
		return
	}

	response.RespondCreated(c, gin.H{
		"key":        key,
		"public_url": h.bucket.GetPublicURL(key),
	})
}

func (h *AudioHandler) DownloadAudio(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_key", fmt.Errorf("no object key"))
		return
	}
	reader, err := h.bucket.Download(c.Request.Context(), key)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "object_not_found", err)
		return
	}
	defer reader.Close()

	ct := "application/octet-stream"
	c.DataFromReader(http.StatusOK, -1, ct, reader, nil)
}
