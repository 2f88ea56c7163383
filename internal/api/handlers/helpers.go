package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/trampo-app/trampo/internal/api/middleware"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
	"github.com/trampo-app/trampo/internal/pkg/validator"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// decodeAndValidate reads a JSON body into dst and validates it
func decodeAndValidate(r *http.Request, v *validator.Validator, dst interface{}) *errors.AppError {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.BadRequest("Invalid request body")
	}
	return v.Check(dst)
}

// userID returns the authenticated user, writing a 401 when there is none
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Authentication required"))
		return "", false
	}
	return id, true
}

// writeError writes err as an API error. Unexpected errors are logged and
// answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	appErr := errors.FromError(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		log.WithFields(map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": middleware.GetRequestID(r),
			"code":       appErr.Code,
		}).ErrorWithErr(err, "Request failed")
	}
	utils.WriteError(w, appErr)
}
