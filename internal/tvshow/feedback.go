package tvshow

// Status is the outcome of posting one record.
type Status string

const (
	// StatusAdded means the entry has been created.
	StatusAdded Status = "added"
	// StatusUpdated means an existing entry has been updated.
	StatusUpdated Status = "updated"
	// StatusUnchanged means the existing entry was already up to date.
	StatusUnchanged Status = "unchanged"
	// StatusIgnored means an existing entry was left alone.
	StatusIgnored Status = "ignored"
	// StatusError means the post failed; Feedback.Err holds the cause.
	StatusError Status = "error"
)

// Feedback reports what happened to a single record.
type Feedback[T Record] struct {
	Item   T
	Status Status
	Err    error
}

// FeedbackFunc is called synchronously each time a Feedback is issued.
type FeedbackFunc[T Record] func(Feedback[T])

// NewFeedback starts a feedback for item with the given status.
func NewFeedback[T Record](item T, status Status) Feedback[T] {
	return Feedback[T]{Item: item, Status: status}
}

// Failed returns a copy of f marked as an error.
func (f Feedback[T]) Failed(err error) Feedback[T] {
	f.Status = StatusError
	f.Err = err
	return f
}

// Added returns a copy of f marked as added with the confirmed item.
func (f Feedback[T]) Added(item T) Feedback[T] {
	f.Status = StatusAdded
	f.Item = item
	return f
}

// HasErrors reports whether any feedback ended in StatusError.
func HasErrors[T Record](feedbacks []Feedback[T]) bool {
	for _, fb := range feedbacks {
		if fb.Status == StatusError {
			return true
		}
	}
	return false
}
