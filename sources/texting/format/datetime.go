package format

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Ageify renders the age of a timestamp the way a human would say it.
func Ageify(at time.Time) string {
	return humanize.Time(at)
}
