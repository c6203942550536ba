package server

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hrryniu/invoice-ingest/constants"
	"github.com/hrryniu/invoice-ingest/internal/common"
	"github.com/hrryniu/invoice-ingest/internal/entity"
	"github.com/hrryniu/invoice-ingest/internal/export"
	"github.com/hrryniu/invoice-ingest/internal/jobs"
)

const defaultWaitTimeout = 30 * time.Second

// IngestHandler exposes the submission and polling façade over the job
// manager.
type IngestHandler struct {
	manager  *jobs.Manager
	exporter *export.Service
	logger   *slog.Logger

	maxUploadBytes int64
}

func NewIngestHandler(manager *jobs.Manager, exporter *export.Service, maxUploadBytes int64, logger *slog.Logger) *IngestHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 20 << 20
	}
	return &IngestHandler{manager: manager, exporter: exporter, logger: logger, maxUploadBytes: maxUploadBytes}
}

// submitRequest is the JSON submission body. Multipart uploads carry the
// same fields as form values plus the file part.
type submitRequest struct {
	ContentBase64 string `json:"content_base64"`
	MediaType     string `json:"media_type"`
	DocumentClass string `json:"document_class"`
	Mode          string `json:"mode"`
	Filename      string `json:"filename"`
}

// Submit handles POST /api/v1/documents. mode=immediate runs the pipeline
// inline and returns the result; mode=queued (default) returns a job id.
func (h *IngestHandler) Submit(c *gin.Context) {
	doc, mode, err := h.parseSubmission(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	switch mode {
	case "immediate":
		res, err := h.manager.ProcessInline(c.Request.Context(), doc)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, res)
	case "", "queued":
		id, err := h.manager.Submit(c.Request.Context(), doc)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondAccepted(c, gin.H{"job_id": id})
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_MODE", "mode must be 'immediate' or 'queued'")
	}
}

func (h *IngestHandler) parseSubmission(c *gin.Context) (*entity.Document, string, error) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("%w: missing file part", common.ErrInvalidInput)
		}
		if fileHeader.Size > h.maxUploadBytes {
			return nil, "", fmt.Errorf("%w: file exceeds %d bytes", common.ErrInvalidInput, h.maxUploadBytes)
		}
		f, err := fileHeader.Open()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
		if int64(len(data)) > h.maxUploadBytes {
			return nil, "", fmt.Errorf("%w: file exceeds %d bytes", common.ErrInvalidInput, h.maxUploadBytes)
		}

		doc, err := buildDocument(data, c.PostForm("media_type"), c.PostForm("document_class"), fileHeader.Filename)
		if err != nil {
			return nil, "", err
		}
		return doc, c.PostForm("mode"), nil
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	data, err := base64.StdEncoding.DecodeString(req.ContentBase64)
	if err != nil {
		return nil, "", fmt.Errorf("%w: content_base64 is not valid base64", common.ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty document", common.ErrInvalidInput)
	}
	if int64(len(data)) > h.maxUploadBytes {
		return nil, "", fmt.Errorf("%w: document exceeds %d bytes", common.ErrInvalidInput, h.maxUploadBytes)
	}

	doc, err := buildDocument(data, req.MediaType, req.DocumentClass, req.Filename)
	if err != nil {
		return nil, "", err
	}
	return doc, req.Mode, nil
}

func buildDocument(data []byte, mediaType, class, filename string) (*entity.Document, error) {
	mt, ok := constants.ParseMediaType(mediaType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedMediaType, mediaType)
	}
	doc := &entity.Document{Bytes: data, MediaType: mt, Filename: filename}
	if class != "" {
		dc, ok := constants.ParseDocumentClass(class)
		if !ok {
			return nil, fmt.Errorf("%w: document_class must be 'invoice' or 'expense'", common.ErrInvalidInput)
		}
		doc.Class = dc
	}
	return doc, nil
}

// Status handles GET /api/v1/jobs/:id.
func (h *IngestHandler) Status(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_JOB_ID", "job id must be a UUID")
		return
	}
	snap, err := h.manager.Status(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, snap)
}

// Wait handles GET /api/v1/jobs/:id/wait?timeout=30s.
func (h *IngestHandler) Wait(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_JOB_ID", "job id must be a UUID")
		return
	}

	timeout := defaultWaitTimeout
	if raw := c.Query("timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_TIMEOUT", "timeout must be a positive duration such as 30s")
			return
		}
		timeout = d
	}

	res, err := h.manager.WaitFor(c.Request.Context(), id, timeout)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// Export handles GET /api/v1/jobs/:id/export, returning an XLSX workbook
// for a completed job.
func (h *IngestHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_JOB_ID", "job id must be a UUID")
		return
	}
	snap, err := h.manager.Status(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if snap.Status != constants.JobStatusCompleted || snap.Result == nil {
		RespondError(c, http.StatusConflict, "JOB_NOT_COMPLETED", "export requires a completed job")
		return
	}

	data, err := h.exporter.ResultXLSX(snap.Result)
	if err != nil {
		h.logger.Error("export failed", "job_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "could not build workbook")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=extraction-%s.xlsx", id))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Health handles GET /healthz.
func (h *IngestHandler) Health(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}
