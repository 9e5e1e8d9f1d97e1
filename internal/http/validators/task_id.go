package validators

import (
	"strconv"
	"strings"

	"flowstate.app/flowstate-api/internal/errors"
)

// TaskID parses the :id path parameter. Task ids are positive integers
// assigned by the repository.
func TaskID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.ErrInvalidTaskID
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidTaskID
	}

	return id, nil
}
