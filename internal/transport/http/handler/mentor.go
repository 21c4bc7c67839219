package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorpath/internal/app"
	"mentorpath/internal/transport/http/response"
)

type MentorHandler struct {
	mentorService *app.MentorService
}

func NewMentorHandler(mentorService *app.MentorService) *MentorHandler {
	return &MentorHandler{mentorService: mentorService}
}

func (h *MentorHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	mentors, err := h.mentorService.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "list mentors failed")
		return
	}
	response.OK(c, gin.H{"mentors": mentors})
}

func (h *MentorHandler) Add(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req app.AddMentorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	result, err := h.mentorService.Add(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err, "add mentor failed")
		return
	}
	response.OK(c, result)
}
