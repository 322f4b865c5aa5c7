package recommend

import "time"

const (
	SeasonKharif = "Kharif"
	SeasonRabi   = "Rabi"
	SeasonZaid   = "Zaid"
)

// CurrentSeason returns the Indian cropping season that t falls in:
// Kharif from June to September, Rabi from October to February and Zaid
// in the months between.
func CurrentSeason(t time.Time) string {
	switch m := t.Month(); {
	case m >= time.June && m <= time.September:
		return SeasonKharif
	case m >= time.October || m <= time.February:
		return SeasonRabi
	default:
		return SeasonZaid
	}
}
