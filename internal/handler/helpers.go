package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/crier-dev/crier/internal/domain"
	"github.com/crier-dev/crier/internal/errors"
	mw "github.com/crier-dev/crier/internal/middleware"
)

func parseIntParam(value, name string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Invalid %s", name),
			StatusCode: http.StatusBadRequest,
		}
	}
	return id, nil
}

// viewerId returns the authenticated user's id, or 0 for anonymous
// requests. Viewer-specific flags resolve to false for 0.
func viewerId(r *http.Request) domain.UserId {
	if user := mw.GetUserFromContext(r); user != nil {
		return user.Id
	}
	return 0
}
