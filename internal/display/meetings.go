package display

import (
	"fmt"

	"github.com/fathomctl/fathomctl/internal/connection"
	"github.com/fathomctl/fathomctl/internal/fathomsdk"
)

const maxFieldWidth = 80

// MeetingSummary prints up to max meetings, truncating long field values.
func (p *Printer) MeetingSummary(meetings []fathomsdk.Meeting, max int) {
	count := len(meetings)
	if count == 0 {
		p.Info("No meetings found in response")
		return
	}

	p.Success(fmt.Sprintf("Found %d meeting(s)", count))

	shown := meetings
	if count > max {
		shown = meetings[:max]
	}

	for i, meeting := range shown {
		fmt.Fprintf(p.w, "\n  Meeting %d:\n", i+1)
		p.meetingFields(meeting)
	}

	if count > max {
		fmt.Fprintf(p.w, "\n  ... and %d more meeting(s)\n", count-max)
	}
}

func (p *Printer) meetingFields(meeting fathomsdk.Meeting) {
	field := func(label, value string) {
		if value == "" {
			return
		}
		if len(value) > maxFieldWidth {
			value = value[:maxFieldWidth] + "..."
		}
		p.Result(label, value, 4)
	}

	field("title", meeting.Title)
	field("meeting_title", meeting.MeetingTitle)
	field("created_at", meeting.CreatedAt)
	field("scheduled_start_time", meeting.ScheduledStartTime)
	field("scheduled_end_time", meeting.ScheduledEndTime)
	field("url", meeting.URL)
	field("share_url", meeting.ShareURL)
	if meeting.RecordedBy != nil {
		field("recorded_by", meeting.RecordedBy.Email)
	}
	if len(meeting.CalendarInvitees) > 0 {
		p.Result("invitees", len(meeting.CalendarInvitees), 4)
	}
	if len(meeting.ActionItems) > 0 {
		p.Result("action_items", len(meeting.ActionItems), 4)
	}
}

// FilterOutcome prints one line per filter scenario with the matched count.
func (p *Printer) FilterOutcome(name string, env connection.Envelope) {
	if !env.Success {
		p.Error(fmt.Sprintf("%s: %s", name, env.Error))
		return
	}

	count, ok := ItemCount(env)
	if !ok {
		p.Error(fmt.Sprintf("%s: response had no result items", name))
		return
	}

	marker := "  "
	if p.decorated && count > 0 {
		marker = "🎉"
	}
	fmt.Fprintf(p.w, "%s %s: %d meetings\n", marker, name, count)
}

// ItemCount extracts the number of result items from an envelope, handling
// both the typed SDK payload and the generic REST payload.
func ItemCount(env connection.Envelope) (int, bool) {
	switch data := env.Data.(type) {
	case *fathomsdk.ListMeetingsResponse:
		if data == nil || data.Result == nil {
			return 0, false
		}
		return len(data.Result.Items), true
	case *fathomsdk.ListTeamsResponse:
		if data == nil || data.Result == nil {
			return 0, false
		}
		return len(data.Result.Items), true
	case map[string]any:
		result, ok := data["result"].(map[string]any)
		if !ok {
			return 0, false
		}
		items, ok := result["items"].([]any)
		if !ok {
			return 0, false
		}
		return len(items), true
	default:
		return 0, false
	}
}

// Meetings extracts the typed meeting items from an SDK envelope.
func Meetings(env connection.Envelope) []fathomsdk.Meeting {
	data, ok := env.Data.(*fathomsdk.ListMeetingsResponse)
	if !ok || data.Result == nil {
		return nil
	}
	return data.Result.Items
}
