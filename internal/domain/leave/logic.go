package leave

import (
	"errors"
	"time"
)

// CalculateDays returns the inclusive day count between start and end.
// The backend's workdays endpoint is the authority; this is the client-side
// preview shown before submission.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return end.Sub(start).Hours()/24 + 1, nil
}
