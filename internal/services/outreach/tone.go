package outreach

import "math"

// Tone is the register of a follow-up, chosen by how long we have waited.
type Tone string

const (
	ToneGentle       Tone = "gentle"
	ToneFriendly     Tone = "friendly"
	ToneReminder     Tone = "respectful_reminder"
	ToneReengagement Tone = "re_engagement"
	ToneClosure      Tone = "soft_closure"
)

// Tones lists every band in elapsed-time order.
var Tones = []Tone{ToneGentle, ToneFriendly, ToneReminder, ToneReengagement, ToneClosure}

type toneBand struct {
	maxDays int
	tone    Tone
}

var toneBands = []toneBand{
	{3, ToneGentle},
	{7, ToneFriendly},
	{14, ToneReminder},
	{30, ToneReengagement},
}

// WaitDays rounds a raw wait to whole days, clamped to [0, MaxInt32].
func WaitDays(days float64) int {
	if math.IsNaN(days) || days < 0 {
		return 0
	}
	if days >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(days))
}

// ToneFor maps elapsed days to a tone band: 0-3 gentle, 4-7 friendly,
// 8-14 reminder, 15-30 re-engagement, beyond that soft closure.
func ToneFor(days float64) Tone {
	d := WaitDays(days)
	for _, b := range toneBands {
		if d <= b.maxDays {
			return b.tone
		}
	}
	return ToneClosure
}
