package http

import (
	"errors"
	"net/http"

	"github.com/icproject/catalog-auth/internal/oauth"
	"github.com/icproject/catalog-auth/internal/service"
	"github.com/icproject/catalog-auth/internal/store"
	"github.com/icproject/catalog-auth/internal/token"
	"github.com/icproject/catalog-auth/internal/utils"
	"github.com/icproject/catalog-auth/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrDuplicateIdentity:   http.StatusConflict,

	token.ErrTokenExpired:    http.StatusUnauthorized,
	token.ErrTokenMalformed:  http.StatusUnauthorized,
	token.ErrTokenRevoked:    http.StatusUnauthorized,
	token.ErrPurposeMismatch: http.StatusUnauthorized,

	oauth.ErrUnknownProvider: http.StatusNotFound,
	oauth.ErrExchangeFailed:  http.StatusUnauthorized,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError maps a service-layer error to its HTTP status and writes
// a JSON error body. A 401 always carries the same generic message so that
// responses reveal nothing about which check failed; a 500 never leaks the
// underlying error text.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	message := err.Error()
	switch status {
	case http.StatusUnauthorized:
		message = service.ErrInvalidCredentials.Error()
	case http.StatusInternalServerError:
		message = http.StatusText(http.StatusInternalServerError)
	}

	writeError(w, message, status)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}
