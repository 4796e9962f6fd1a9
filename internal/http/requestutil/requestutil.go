package requestutil

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pwhl-schedule-service/internal/filter"
)

// ParseCriteria builds filter criteria from schedule query parameters.
// Empty parameters mean no constraint; syntactically invalid season or
// month values are caller errors.
func ParseCriteria(values url.Values) (filter.Criteria, error) {
	var criteria filter.Criteria

	if raw := strings.TrimSpace(values.Get("season")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid season %q", raw)
		}
		criteria.SeasonID = &id
	}

	if raw := strings.TrimSpace(values.Get("month")); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return filter.Criteria{}, fmt.Errorf("invalid month %q (expected 1-12)", raw)
		}
		month := time.Month(m)
		criteria.Month = &month
	}

	criteria.Team = strings.TrimSpace(values.Get("team"))
	criteria.Status = strings.ToLower(strings.TrimSpace(values.Get("status")))

	return criteria, nil
}
