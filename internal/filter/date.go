package filter

import (
	"fmt"
	"time"

	"go-jobmarket-scraper/internal/models"
)

// MaxPostedWithinDays bounds the recency window so it stays a valid
// time.Duration.
const MaxPostedWithinDays = 36500

// PostedWithinDays converts a day count into a recency window.
func PostedWithinDays(days int) (time.Duration, error) {
	if days < 1 || days > MaxPostedWithinDays {
		return 0, fmt.Errorf("posted within days must be between 1 and %d, got %d", MaxPostedWithinDays, days)
	}
	return time.Duration(days) * 24 * time.Hour, nil
}

// futureSlack tolerates posted dates slightly ahead of now (timezones).
const futureSlack = 2 * 24 * time.Hour

// IsRecentJob reports whether posted falls within maxAge before now.
// An unknown date is kept.
func IsRecentJob(posted *time.Time, now time.Time, maxAge time.Duration) bool {
	if posted == nil {
		return true
	}

	diff := now.Sub(*posted)
	//reject if older than the window
	if diff > maxAge {
		return false
	}
	//reject if too far in the future
	if diff < -futureSlack {
		return false
	}
	return true
}

// DateRange returns the earliest and latest posted dates in jobs, or nils
// when no job has one.
func DateRange(jobs []models.NormalizedJob) (first, last *time.Time) {
	for i := range jobs {
		d := jobs[i].PostedDate
		if d == nil {
			continue
		}
		if first == nil || d.Before(*first) {
			first = d
		}
		if last == nil || d.After(*last) {
			last = d
		}
	}
	return first, last
}
