package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talentflow/internal/common"
)

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var statusByCode = map[common.Code]int{
	common.CodeNotFound:    http.StatusNotFound,
	common.CodeValidation:  http.StatusBadRequest,
	common.CodeIllegalMove: http.StatusUnprocessableEntity,
	common.CodeGateBlocked: http.StatusConflict,
	common.CodeConflict:    http.StatusConflict,
	common.CodeRateLimited: http.StatusTooManyRequests,
	common.CodeUnavailable: http.StatusServiceUnavailable,
	common.CodeStorage:     http.StatusInternalServerError,
	common.CodeInternal:    http.StatusInternalServerError,
}

// HTTPStatus maps an error code to its response status.
func HTTPStatus(code common.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	code := common.CodeOf(err)
	status := HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("request_id", requestIDFrom(c)),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}
	body := errorBody{Code: code, Message: common.MessageOf(err)}
	var appErr *common.Error
	if errors.As(err, &appErr) {
		body.Fields = appErr.Fields
	}
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, common.NewValidationError("Invalid request: "+err.Error(), nil))
}
