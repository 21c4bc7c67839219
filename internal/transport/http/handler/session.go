package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorpath/internal/app"
	"mentorpath/internal/transport/http/response"
)

type SessionHandler struct {
	bookingService *app.BookingService
	ledgerService  *app.LedgerService
	chatService    *app.ChatService
}

func NewSessionHandler(bookingService *app.BookingService, ledgerService *app.LedgerService, chatService *app.ChatService) *SessionHandler {
	return &SessionHandler{
		bookingService: bookingService,
		ledgerService:  ledgerService,
		chatService:    chatService,
	}
}

// List always answers 200; a ledger that could not be read comes back empty
// with its error field set.
func (h *SessionHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	response.OK(c, h.ledgerService.List(c.Request.Context(), userID))
}

func (h *SessionHandler) Book(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req app.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.bookingService.Book(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, app.ErrDuplicateSession) {
			response.Error(c, http.StatusConflict, response.CodeDuplicateSession, err.Error())
			return
		}
		writeServiceError(c, err, "book session failed")
		return
	}
	response.OK(c, result)
}

func (h *SessionHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	session, err := h.ledgerService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "get session failed")
		return
	}
	response.OK(c, session)
}

func (h *SessionHandler) Cancel(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	sessionID := c.Param("id")
	if err := h.ledgerService.Cancel(c.Request.Context(), userID, sessionID); err != nil {
		writeServiceError(c, err, "cancel session failed")
		return
	}
	if h.chatService != nil {
		if err := h.chatService.Clear(c.Request.Context(), sessionID); err != nil {
			log.Printf("clear chat of cancelled session %s failed: %v", sessionID, err)
		}
	}
	response.OK(c, gin.H{"cancelled": sessionID})
}
