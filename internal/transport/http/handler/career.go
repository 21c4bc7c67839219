package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorpath/internal/career"
	"mentorpath/internal/model"
	"mentorpath/internal/transport/http/response"
)

// PathGenerator turns a profile into a career path.
type PathGenerator interface {
	Generate(ctx context.Context, profile model.Profile) (model.CareerPath, error)
}

type CareerHandler struct {
	generator PathGenerator
}

func NewCareerHandler(generator PathGenerator) *CareerHandler {
	return &CareerHandler{generator: generator}
}

// Generate only fails when the completion service cannot be reached. An
// unusable completion still yields the fallback path.
func (h *CareerHandler) Generate(c *gin.Context) {
	var profile model.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	path, err := h.generator.Generate(c.Request.Context(), profile)
	if errors.Is(err, career.ErrInvalidProfile) {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("generate career path failed: %v", err)
		response.Error(c, http.StatusBadGateway, response.CodeUpstream, "career path generation failed")
		return
	}
	response.OK(c, path)
}
