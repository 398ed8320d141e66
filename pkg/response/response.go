package response

import (
	stderrors "errors"
	"net/http"

	"shop-notification-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

// OK sends 200 {"ok":true}.
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, Resp{OK: true})
}

// OKWith sends 200 with a caller-defined body. The body is expected to
// carry its own "ok" field.
func OKWith(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// Unauthorized sends 401 {"ok":false}.
func Unauthorized(c *gin.Context) {
	Error(c, errors.NewUnauthorizedHTTPError())
}

// Error sends the status and body that correspond to err.
func Error(c *gin.Context, err error) {
	statusCode, resp := parseError(err)
	c.JSON(statusCode, resp)
}

// ErrorWithMap translates err through eMap before responding. Errors not in
// the map (matched with errors.Is) fall through to Error.
func ErrorWithMap(c *gin.Context, err error, eMap ErrorMapping) {
	for target, httpErr := range eMap {
		if stderrors.Is(err, target) {
			Error(c, httpErr)
			return
		}
	}
	Error(c, err)
}

// PanicError responds to a recovered panic value.
func PanicError(c *gin.Context, _ any) {
	c.JSON(http.StatusInternalServerError, Resp{OK: false, Message: DefaultErrorMessage})
}

func parseError(err error) (int, Resp) {
	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		return http.StatusBadRequest, Resp{
			OK:      false,
			Message: ValidationErrorMsg,
			Errors:  validationErr.Fields,
		}
	}

	var httpErr *errors.HTTPError
	if stderrors.As(err, &httpErr) {
		statusCode := httpErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}
		return statusCode, Resp{OK: false, Message: httpErr.Message}
	}

	return http.StatusInternalServerError, Resp{OK: false, Message: DefaultErrorMessage}
}
