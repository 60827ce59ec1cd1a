package reviews

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-feedback-backend/internal/extract"
	"resume-feedback-backend/internal/report"
	"resume-feedback-backend/internal/shared/server/middleware"
	"resume-feedback-backend/internal/shared/server/respond"
)

// maxUploadBytes caps resume uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// Handler exposes the review endpoints.
type Handler struct {
	Service *Service
}

// RegisterRoutes mounts the review endpoints on the given router group.
func RegisterRoutes(r gin.IRouter, svc *Service) {
	h := &Handler{Service: svc}
	r.POST("/resumes", h.Upload)
	r.GET("/resumes/history", h.History)
	r.GET("/resumes/:id/report", h.Report)
}

// Upload accepts a multipart resume, runs the analysis pipeline and returns
// the stored result.
func (h *Handler) Upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "file exceeds the 10 MiB upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "no_file_provided", "no resume file uploaded", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "no_file_provided", "no resume file uploaded", nil)
		return
	}
	defer file.Close()

	review, err := h.Service.HandleUpload(c.Request.Context(), UploadInput{
		UserID:   userID,
		FileName: fileHeader.Filename,
		JobRole:  c.PostForm("jobRole"),
		Content:  file,
	})
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_file_type",
				"only PDF and Word documents are supported", nil)
		case errors.Is(err, extract.ErrExtraction):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed",
				"could not extract text from the uploaded file", nil)
		case errors.Is(err, ErrPersistence):
			respond.Error(c, http.StatusInternalServerError, "persistence_failed",
				"failed to store the analysis", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error",
				"failed to process the uploaded resume", nil)
		}
		return
	}

	c.Set("analysisId", review.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"success":    true,
		"jobRole":    review.JobRole,
		"analysis":   review.AIFeedback,
		"atsScore":   review.ATSScore,
		"analysisId": review.ID,
	})
}

// History lists the caller's past reviews, newest first.
func (h *Handler) History(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	items, err := h.Service.History(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load history", nil)
		return
	}
	respond.OK(c, gin.H{
		"success": true,
		"history": items,
	})
}

// Report renders one review as a downloadable PDF.
func (h *Handler) Report(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	review, err := h.Service.GetOwned(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "review not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load review", nil)
		return
	}

	pdfBytes, err := report.Render(report.Review{
		FileName:  review.FileName,
		JobRole:   review.JobRole,
		Feedback:  review.AIFeedback,
		ATSScore:  review.ATSScore,
		CreatedAt: review.CreatedAt,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render report", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "resume-review-"+review.ID+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
