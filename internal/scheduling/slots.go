package scheduling

import "fmt"

// GenerateSlots enumerates every bookable time slot of a business day as
// zero-padded "HH:MM" strings, in ascending order, windows in policy
// order. Window end times are excluded: with the default policy the
// morning runs 07:00 through 11:30 and the afternoon 14:00 through
// 17:30, 18 slots total.
func (p Policy) GenerateSlots() []string {
	var slots []string
	for _, w := range p.Windows {
		start, end := w.Minutes()
		for m := start; m < end; m += p.SlotMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
		}
	}
	return slots
}
