package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "scamshield/internal/api/errors"
	"scamshield/internal/api/middleware"
	"scamshield/internal/api/v1/dto"
	"scamshield/internal/app/analyzer"
	"scamshield/internal/app/audio"
	"scamshield/internal/app/engine"
)

// AnalysisHandler handles message and audio analysis endpoints
type AnalysisHandler struct {
	analyzer *analyzer.Analyzer
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(a *analyzer.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: a}
}

// AnalyzeText handles POST /api/v1/analyze
func (h *AnalysisHandler) AnalyzeText(c *gin.Context) {
	var req dto.AnalyzeTextRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	verdict, err := h.analyzer.AnalyzeText(c.Request.Context(), req.Text)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromVerdict(*verdict))
}

// AnalyzeAudio handles POST /api/v1/analyze/audio. The request is multipart;
// the audio payload is validated before any engine work starts.
func (h *AnalysisHandler) AnalyzeAudio(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("missing multipart field 'audio'"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("unreadable audio upload"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, audio.MaxSourceSize+1))
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("failed to read audio upload"))
		return
	}

	src, err := audio.NewSource(data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError(err.Error()))
		return
	}

	opts := analyzer.AudioOptions{
		Language:         c.PostForm("language"),
		ManualTranscript: c.PostForm("manual_transcript"),
		Preference:       engine.Preference(c.PostForm("engine")),
	}

	verdict, err := h.analyzer.AnalyzeAudio(c.Request.Context(), src, opts)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromVerdict(*verdict))
}
