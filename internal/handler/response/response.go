package response

import (
	"net/http"

	"signer-core/pkg/apdu"
	"signer-core/pkg/errno"

	"github.com/gin-gonic/gin"
)

// Success wraps data, which must stay valid until the reply is written,
// in a 0x9000 response.
func Success(data []byte) apdu.Response {
	return apdu.Response{Data: data, SW: errno.OK.Code}
}

// Error returns a data-less response carrying the status word of err.
func Error(err error) apdu.Response {
	code, _ := errno.Decode(err)
	return apdu.Response{SW: code}
}

// JSON defines the structure returned by the HTTP side server
type JSON struct {
	Code    uint16      `json:"code"`
	Message string      `json:"msg"`
	Data    interface{} `json:"data"`
}

// JSONSuccess returns a success response with data
func JSONSuccess(c *gin.Context, data interface{}) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(http.StatusOK, JSON{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}
