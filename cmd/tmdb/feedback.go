package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"tmdbpost/internal/tvshow"
)

func renderFeedbackLine[T tvshow.Record](fb tvshow.Feedback[T], colorize bool) string {
	var message string
	if name := fb.Item.Fields().Name; name != "" {
		message = fmt.Sprintf("%q", name)
	}
	if fb.Err != nil {
		message = strings.TrimSpace(message + " " + fb.Err.Error())
	}
	return renderStatusLine(fb.Item.Label(), styleForStatus(fb.Status), message, colorize)
}

func renderFeedbackTable[T tvshow.Record](feedbacks []tvshow.Feedback[T]) string {
	headers := []string{"Record", "Status", "Name", "Date", "Overview", "Detail"}
	rows := make([][]string, 0, len(feedbacks))
	for _, fb := range feedbacks {
		fields := fb.Item.Fields()
		detail := ""
		if fb.Err != nil {
			detail = fb.Err.Error()
		}
		rows = append(rows, []string{
			fb.Item.Label(),
			string(fb.Status),
			fields.Name,
			fields.Date,
			fields.Overview,
			detail,
		})
	}
	return renderTable(headers, rows)
}

// summarizeFeedback counts records per status in a fixed order, e.g.
// "2 added, 1 ignored".
func summarizeFeedback[T tvshow.Record](feedbacks []tvshow.Feedback[T]) string {
	counts := make(map[tvshow.Status]int)
	for _, fb := range feedbacks {
		counts[fb.Status]++
	}
	order := []tvshow.Status{
		tvshow.StatusAdded,
		tvshow.StatusUpdated,
		tvshow.StatusUnchanged,
		tvshow.StatusIgnored,
		tvshow.StatusError,
	}
	parts := make([]string, 0, len(order))
	for _, status := range order {
		if counts[status] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[status], status))
		}
	}
	return strings.Join(parts, ", ")
}

type feedbackView struct {
	Record string        `json:"record"`
	Status tvshow.Status `json:"status"`
	Item   any           `json:"item"`
	Error  string        `json:"error,omitempty"`
}

func feedbackViews[T tvshow.Record](feedbacks []tvshow.Feedback[T]) []feedbackView {
	views := make([]feedbackView, 0, len(feedbacks))
	for _, fb := range feedbacks {
		view := feedbackView{
			Record: fb.Item.Label(),
			Status: fb.Status,
			Item:   fb.Item,
		}
		if fb.Err != nil {
			view.Error = fb.Err.Error()
		}
		views = append(views, view)
	}
	return views
}

// writeFeedbackJSON prints the feedback list as an indented JSON array. An
// empty run prints [] rather than null.
func writeFeedbackJSON[T tvshow.Record](w io.Writer, feedbacks []tvshow.Feedback[T]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(feedbackViews(feedbacks))
}
