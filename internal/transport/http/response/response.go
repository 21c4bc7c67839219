package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                   = 0
	CodeBadRequest           = 40000
	CodeUsernameExists       = 40001
	CodeEmailExists          = 40002
	CodeUnsupportedFile      = 40003
	CodeUnauthorized         = 40100
	CodeInvalidCredentials   = 40101
	CodeNotFound             = 40400
	CodeSessionNotFound      = 40401
	CodeDuplicateSession     = 40901
	CodePayloadTooLarge      = 41300
	CodePaymentsNotConnected = 42800
	CodeInternalServer       = 50000
	CodeUpstream             = 50200
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
