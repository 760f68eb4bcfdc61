package utils

import (
	"math"
	"time"
)

// Urgency is how soon an item's expiry date is reached.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyWarning  Urgency = "warning"
	UrgencySafe     Urgency = "safe"
)

// Default thresholds, overridable through config. The 3-day "soon" window
// (notifications) and the 3/7 split (card coloring) are separate knobs on
// purpose; do not merge them.
const (
	DefaultSoonDays     = 3
	DefaultCriticalDays = 3
	DefaultWarningDays  = 7
)

// midnight strips the time-of-day component in t's location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntilExpiry returns the whole number of days from ref to expiry,
// rounding up. Both dates are normalized to midnight first; skipping that
// shifts the answer by a day depending on when the call happens.
// Negative means already expired.
func DaysUntilExpiry(ref, expiry time.Time) int {
	diff := midnight(expiry).Sub(midnight(ref))
	return int(math.Ceil(diff.Hours() / 24))
}

// IsExpiringSoon reports whether days falls inside the notification window
// [0, soonDays]. Expired items are not "expiring soon".
func IsExpiringSoon(days, soonDays int) bool {
	return days >= 0 && days <= soonDays
}

// ClassifyUrgency buckets a day count for display:
// days <= criticalDays → critical, days <= warningDays → warning,
// anything later → safe.
func ClassifyUrgency(days, criticalDays, warningDays int) Urgency {
	switch {
	case days <= criticalDays:
		return UrgencyCritical
	case days <= warningDays:
		return UrgencyWarning
	default:
		return UrgencySafe
	}
}
