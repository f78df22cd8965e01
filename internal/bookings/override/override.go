package override

import "condohub/pkg/model"

// Resolution is the effective override state for one (resource, date) pair.
// It only lives for the duration of an admission or slot computation.
type Resolution struct {
	// ClosedAllDay is set by a closed/daily event.
	ClosedAllDay bool
	// OpenWindow is the window supplied by an open/daily event, opening the
	// resource on a date outside its recurring schedule.
	OpenWindow *model.TimeWindow
	// TemporaryCloseEnd is the "HH:MM" end of a closed/hourly event; slots
	// before this time are unavailable on the date.
	TemporaryCloseEnd string
}

// Resolve scans the date's events in the order the store returned them and
// stops at the first daily event, open or closed. An open/daily event seen
// before a closed/daily one supplies the day's window and suppresses the
// closure; scanned the other way around, the closure wins and the open
// window is never read. Administrators rely on this scan order, so it is
// kept exactly as the portal has always behaved.
func Resolve(events []model.Event) Resolution {
	var res Resolution

	for _, event := range events {
		if event.Status == model.EventClosed && event.Type == model.EventDaily {
			res.ClosedAllDay = true
			break
		}

		if event.Status == model.EventOpen && event.Type == model.EventDaily &&
			event.StartTime != "" && event.EndTime != "" {
			res.OpenWindow = &model.TimeWindow{Start: event.StartTime, End: event.EndTime}
			break
		}

		if event.Status == model.EventClosed && event.Type == model.EventHourly && event.EndTime != "" {
			res.TemporaryCloseEnd = event.EndTime
		}
	}

	return res
}

// Closed reports whether the resource is shut for the whole date.
func (r Resolution) Closed() bool {
	return r.ClosedAllDay && r.OpenWindow == nil
}
