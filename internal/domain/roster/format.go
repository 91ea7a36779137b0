package roster

import (
	"strconv"

	"github.com/okian/roster/internal/domain/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const minutesPerHour = 60

// FormatValue renders a raw metric value for display.
// Unknown keys fall through to plain grouped digits.
func FormatValue(key model.MetricKey, value int) string {
	switch key {
	case model.MetricTimeSpent:
		return FormatMinutes(value)
	case model.MetricRevenue:
		return "$" + Grouped(value)
	case model.MetricCompletionRate:
		return strconv.Itoa(value) + "%"
	default:
		return Grouped(value)
	}
}

// FormatMinutes renders minutes as "<H>h <M>m", or "<M>m" below one hour.
func FormatMinutes(minutes int) string {
	hours := minutes / minutesPerHour
	rest := minutes % minutesPerHour
	if hours == 0 {
		return strconv.Itoa(rest) + "m"
	}
	return strconv.Itoa(hours) + "h " + strconv.Itoa(rest) + "m"
}

// Grouped renders n with comma thousands separators, e.g. 1,200.
func Grouped(n int) string {
	// Printers keep per-call state; build one per call.
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
