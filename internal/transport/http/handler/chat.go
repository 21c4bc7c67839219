package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mentorpath/internal/app"
	"mentorpath/internal/attachment"
	"mentorpath/internal/transport/http/middleware"
	"mentorpath/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *app.ChatService
	maxBytes    int64
}

type SendMessageRequest struct {
	Content    string `json:"content" binding:"required,max=8000"`
	SenderName string `json:"sender_name" binding:"max=128"`
}

func NewChatHandler(chatService *app.ChatService, maxBytes int64) *ChatHandler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &ChatHandler{chatService: chatService, maxBytes: maxBytes}
}

func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	messages, err := h.chatService.History(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "get history failed")
		return
	}
	response.OK(c, gin.H{"messages": messages})
}

func (h *ChatHandler) Send(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	msg, err := h.chatService.Send(c.Request.Context(), userID, c.Param("id"), app.SendMessageInput{
		SenderName: senderName(c, req.SenderName),
		Content:    req.Content,
	})
	if err != nil {
		if errors.Is(err, app.ErrMessageEmpty) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
		writeServiceError(c, err, "send message failed")
		return
	}
	response.OK(c, msg)
}

func (h *ChatHandler) Upload(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	data, header, ok := readUpload(c, h.maxBytes)
	if !ok {
		return
	}

	msg, err := h.chatService.Upload(c.Request.Context(), userID, c.Param("id"), app.UploadInput{
		SenderName: senderName(c, c.PostForm("sender_name")),
		FileName:   header.Filename,
		MIME:       header.Header.Get("Content-Type"),
		Data:       data,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrAttachmentTooBig):
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge, err.Error())
		case errors.Is(err, app.ErrAttachmentMissing):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			writeServiceError(c, err, "upload attachment failed")
		}
		return
	}
	response.OK(c, msg)
}

func (h *ChatHandler) Download(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	ref := strings.TrimSpace(c.Query("ref"))
	if ref == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "ref is required")
		return
	}
	blob, err := h.chatService.Attachment(c.Request.Context(), userID, c.Param("id"), ref)
	if err != nil {
		if errors.Is(err, attachment.ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
			return
		}
		writeServiceError(c, err, "download attachment failed")
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+strings.ReplaceAll(blob.Name, "\"", "")+"\"")
	c.Data(http.StatusOK, blob.MIME, blob.Data)
}

func senderName(c *gin.Context, requested string) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	return middleware.MemberName(c)
}

// readUpload reads the multipart "file" field, writing the error response
// itself when the upload is missing or too large.
func readUpload(c *gin.Context, maxBytes int64) ([]byte, *multipart.FileHeader, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+1<<20)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge, "file too large")
			return nil, nil, false
		}
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file is required")
		return nil, nil, false
	}
	if header.Size > maxBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge, "file too large")
		return nil, nil, false
	}
	f, err := header.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read file failed")
		return nil, nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read file failed")
		return nil, nil, false
	}
	return data, header, true
}
