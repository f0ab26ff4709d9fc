package file

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cloudfilestore/api/internal/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts file operations under the provided router group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.GET("/files/list", handler.listFiles)
	group.POST("/files/presign-upload", handler.presignUpload)
	group.GET("/files/presign-download", handler.presignDownload)
	group.POST("/files/record-download", handler.recordDownload)
	group.DELETE("/files/:fileID", handler.deleteFile)
}

type httpHandler struct {
	service *Service
}

type presignUploadRequest struct {
	Filename string `json:"filename"`
}

type recordDownloadRequest struct {
	FileID       string `json:"fileId"`
	AsAttachment *bool  `json:"asAttachment"`
	DownloadName string `json:"downloadName"`
}

func (h *httpHandler) listFiles(c *gin.Context) {
	caller, ok := identity.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	records, err := h.service.List(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *httpHandler) presignUpload(c *gin.Context) {
	caller, ok := identity.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req presignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	grant, err := h.service.PresignUpload(c.Request.Context(), caller, req.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, grant)
}

func (h *httpHandler) presignDownload(c *gin.Context) {
	caller, ok := identity.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	fileID, err := uuid.Parse(c.Query("fileId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'fileId' is required"})
		return
	}

	opts := DownloadOptions{
		AsAttachment: !strings.EqualFold(c.DefaultQuery("asAttachment", "true"), "false"),
		DownloadName: c.Query("downloadName"),
	}

	grant, err := h.service.PresignDownload(c.Request.Context(), caller, fileID, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, grant)
}

func (h *httpHandler) recordDownload(c *gin.Context) {
	caller, ok := identity.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req recordDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	fileID, err := uuid.Parse(req.FileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'fileId' is required"})
		return
	}

	opts := DownloadOptions{AsAttachment: true, DownloadName: req.DownloadName}
	if req.AsAttachment != nil {
		opts.AsAttachment = *req.AsAttachment
	}

	if err := h.service.RecordDownload(c.Request.Context(), caller, fileID, opts); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *httpHandler) deleteFile(c *gin.Context) {
	caller, ok := identity.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	fileID, err := uuid.Parse(c.Param("fileID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, fileID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps service sentinels onto the HTTP error taxonomy. The
// two delete steps surface distinctly so callers can retry just the step
// that failed.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	case errors.Is(err, ErrObjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
	case errors.Is(err, ErrDuplicateID):
		c.JSON(http.StatusBadGateway, gin.H{"error": "file id collision"})
	case errors.Is(err, ErrMetadataUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "metadata store failed"})
	case errors.Is(err, ErrStorageUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "object storage failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
