package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorpath/internal/app"
	"mentorpath/internal/payments"
	"mentorpath/internal/transport/http/middleware"
	"mentorpath/internal/transport/http/response"
)

func requireUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
	}
	return userID, ok
}

// writeServiceError maps service errors shared by several handlers. action
// names the failed operation in the generic 500 message.
func writeServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
	case errors.Is(err, payments.ErrNotConnected), errors.Is(err, payments.ErrMissingCredentials):
		response.Error(c, http.StatusPreconditionRequired, response.CodePaymentsNotConnected, err.Error())
	case errors.Is(err, payments.ErrGateway), errors.Is(err, payments.ErrNoAmount):
		log.Printf("%s: %v", action, err)
		response.Error(c, http.StatusBadGateway, response.CodeUpstream, "payments gateway unavailable")
	default:
		log.Printf("%s: %v", action, err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, action)
	}
}
