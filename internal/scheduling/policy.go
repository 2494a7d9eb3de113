package scheduling

import "fmt"

// WorkingWindow is a half-open range of whole hours [StartHour, EndHour)
// during which appointments may be scheduled.
type WorkingWindow struct {
	StartHour int
	EndHour   int
}

// Minutes returns the window boundaries as minutes since midnight.
func (w WorkingWindow) Minutes() (start, end int) {
	return w.StartHour * 60, w.EndHour * 60
}

// Policy defines the clinic working hours and the slot granularity.
// It is immutable configuration: windows must be disjoint, expressed in
// whole hours, and SlotMinutes must evenly divide each window length.
type Policy struct {
	Windows     []WorkingWindow
	SlotMinutes int
}

// DefaultPolicy is the clinic standard: morning 7:00-12:00, afternoon
// 14:00-18:00, 30-minute slots. The gap between 12:00 and 14:00 is the
// lunch break and is never sliced into slots.
func DefaultPolicy() Policy {
	return Policy{
		Windows: []WorkingWindow{
			{StartHour: 7, EndHour: 12},
			{StartHour: 14, EndHour: 18},
		},
		SlotMinutes: 30,
	}
}

// Contains reports whether a time-of-day, given as minutes since
// midnight, falls inside any working window. Window ends are exclusive.
func (p Policy) Contains(totalMinutes int) bool {
	for _, w := range p.Windows {
		start, end := w.Minutes()
		if totalMinutes >= start && totalMinutes < end {
			return true
		}
	}
	return false
}

// Describe renders the windows for user-facing validation messages,
// e.g. "7:00-12:00 or 14:00-18:00".
func (p Policy) Describe() string {
	out := ""
	for i, w := range p.Windows {
		if i > 0 {
			out += " or "
		}
		out += fmt.Sprintf("%d:00-%d:00", w.StartHour, w.EndHour)
	}
	return out
}
