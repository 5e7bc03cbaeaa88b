package helper

import (
	"net/http"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
)

// ParseResponse fills in status code and message from an *apperror.AppError
// when the caller left them empty.
func ParseResponse(r *types.Response) *types.Response {
	if r.Error != nil {
		appErr := apperror.GetAppError(r.Error)
		if r.Code == 0 || r.Code < http.StatusBadRequest {
			r.Code = appErr.Code
		}
		if r.Message == "" {
			r.Message = appErr.Message
		}
		return r
	}

	if r.Code == 0 {
		r.Code = http.StatusOK
	}
	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}
	return r
}

// ToFault converts an error into the error body of types.ResponseAPI.
func ToFault(err error) *types.Fault {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		appErr := apperror.GetAppError(err)
		return &types.Fault{
			Kind:    string(appErr.Kind),
			Field:   appErr.Field,
			Message: appErr.Message,
		}
	}
	return &types.Fault{Message: err.Error()}
}
