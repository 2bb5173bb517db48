package httperr

import (
	"fmt"
	"net/http"

	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

type FailureDetail struct {
	Serial string `json:"serial"`
	Reason string `json:"reason"`
}

type PartialMatchDetail struct {
	Action    string          `json:"action"`
	Requested int             `json:"requested"`
	Matched   int             `json:"matched"`
	Failures  []FailureDetail `json:"failures"`
}

type ReasonDetail struct {
	Reason string `json:"reason"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort picks the status from the error taxonomy. msg is used only for server errors,
// client errors surface the error text itself.
func Abort(c *gin.Context, err error, msg string) {
	status, detail := Classify(err)
	if status >= http.StatusInternalServerError {
		AbortWithError(c, status, err, msg, nil)
		return
	}
	AbortWithError(c, status, err, publicMessage(err), detail)
}

func Classify(err error) (int, any) {
	var pm *shared.PartialMatchError
	switch {
	case errs.As(err, &pm):
		detail := PartialMatchDetail{
			Action:    string(pm.Action),
			Requested: pm.Requested,
			Matched:   pm.Matched,
			Failures:  make([]FailureDetail, 0, len(pm.Failures)),
		}
		for _, f := range pm.Failures {
			detail.Failures = append(detail.Failures, FailureDetail{Serial: f.Ref, Reason: f.Reason})
		}
		return http.StatusBadRequest, detail
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict, nil
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, nil
	case errs.Is(err, errs.ErrPreconditionFailed):
		return http.StatusBadRequest, ReasonDetail{Reason: shared.FailureReason(err)}
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, nil
	default:
		return http.StatusInternalServerError, nil
	}
}

func publicMessage(err error) string {
	var pm *shared.PartialMatchError
	if errs.As(err, &pm) {
		return fmt.Sprintf("%d of %d serials eligible for %s", pm.Matched, pm.Requested, pm.Action)
	}
	return err.Error()
}
