package report

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/api/auth"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/mailer"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/preview"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/service"
	"go.uber.org/zap"
)

// Handler serves the report endpoints.
type Handler struct {
	svc *service.ReportService
}

// NewHandler creates a Handler backed by svc.
func NewHandler(svc *service.ReportService) *Handler {
	return &Handler{svc: svc}
}

type generateRequest struct {
	DateRange  string `json:"date_range" binding:"required"`
	ReportType string `json:"report_type" binding:"required"`
	Format     string `json:"format" binding:"required"`
}

type shareRequest struct {
	To      string `json:"to" binding:"required,email"`
	Message string `json:"message"`
}

// Generate renders a new report. A report that could not be saved is still
// returned with a warning.
func (h *Handler) Generate(c *gin.Context) {
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	req, err := parseRequest(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), req, auth.Username(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func parseRequest(body generateRequest) (model.ReportRequest, error) {
	dateRange, err := model.ParseDateRange(body.DateRange)
	if err != nil {
		return model.ReportRequest{}, err
	}
	reportType, err := model.ParseReportType(body.ReportType)
	if err != nil {
		return model.ReportRequest{}, err
	}
	format, err := model.ParseFormat(body.Format)
	if err != nil {
		return model.ReportRequest{}, err
	}
	return model.ReportRequest{DateRange: dateRange, ReportType: reportType, Format: format}, nil
}

// List returns the report history without payloads
func (h *Handler) List(c *gin.Context) {
	records := h.svc.List(c.Request.Context())
	reports := make([]model.ReportRecord, 0, len(records))
	for _, r := range records {
		reports = append(reports, r.Summary())
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Get returns a full report record
func (h *Handler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Download streams the decoded report file
func (h *Handler) Download(c *gin.Context) {
	filename, mimeType, data, err := h.svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundOrError(c, err)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, mimeType, data)
}

// Preview returns the preview view as JSON. ?open=false returns the closed view.
func (h *Handler) Preview(c *gin.Context) {
	open := true
	if raw := c.Query("open"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "open must be a boolean"})
			return
		}
		open = v
	}

	view, err := h.svc.Preview(c.Request.Context(), c.Param("id"), open)
	if err != nil {
		notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PreviewPage renders the shareable HTML preview
func (h *Handler) PreviewPage(c *gin.Context) {
	view, err := h.svc.Preview(c.Request.Context(), c.Param("id"), true)
	if errors.Is(err, service.ErrReportNotFound) {
		c.String(http.StatusNotFound, "Report not found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load report")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := preview.RenderHTML(c.Writer, view); err != nil {
		zap.L().Error("Failed to render preview page",
			zap.String("report_id", c.Param("id")),
			zap.Error(err))
	}
}

// ShareEmail sends the report as an e-mail attachment
func (h *Handler) ShareEmail(c *gin.Context) {
	var body shareRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	err := h.svc.ShareByEmail(c.Request.Context(), c.Param("id"), body.To, body.Message, c.ClientIP())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Report sent successfully"})
	case errors.Is(err, mailer.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "E-mail sharing is not configured"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"detail": "Too many share requests. Please try again later."})
	case errors.Is(err, service.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Report not found"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"detail": "Failed to send email"})
	}
}

// Delete removes a report
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

func notFoundOrError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Report not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
