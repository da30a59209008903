package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ibengeu/YASP-sub006/internal/document"
	"github.com/ibengeu/YASP-sub006/internal/workspace"
)

// apiError is the wire shape every error response uses: {"code": int, "message": string}.
type apiError struct {
	status  int
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return e.Message
}

func (e *apiError) GetStatus() int {
	return e.status
}

func init() {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if len(errs) > 0 && msg == "" {
			msg = errs[0].Error()
		}
		return &apiError{
			status:  status,
			Code:    status,
			Message: msg,
		}
	}
}

// mapError converts domain errors into huma status errors.
func mapError(err error) error {
	var perr *document.ParseError
	switch {
	case errors.Is(err, workspace.ErrNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, workspace.ErrTooLarge):
		return huma.NewError(http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, document.ErrInvalidPath):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.As(err, &perr):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, document.ErrNotSerializable):
		return huma.NewError(http.StatusInternalServerError, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, err.Error())
	}
}
