package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorpath/internal/app"
	"mentorpath/internal/transport/http/response"
)

type ResumeHandler struct {
	resumeService *app.ResumeService
	maxBytes      int64
}

func NewResumeHandler(resumeService *app.ResumeService, maxBytes int64) *ResumeHandler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &ResumeHandler{resumeService: resumeService, maxBytes: maxBytes}
}

func (h *ResumeHandler) Check(c *gin.Context) {
	data, header, ok := readUpload(c, h.maxBytes)
	if !ok {
		return
	}
	score, err := h.resumeService.Check(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrResumeUnsupported), errors.Is(err, app.ErrResumeEmpty):
			response.Error(c, http.StatusBadRequest, response.CodeUnsupportedFile, err.Error())
		default:
			writeServiceError(c, err, "check resume failed")
		}
		return
	}
	response.OK(c, score)
}
