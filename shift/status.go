package shift

// Status operation status
type Status int8

const (
	// Queued indicates that the operation has been queued
	Queued Status = iota
	// Completed indicates that every record has been processed successfully
	Completed
	// Cancelled indicates that the operation has been cancelled before reaching the end of the input
	Cancelled
	// Failed indicates that the operation has been failed
	Failed
)

// String returns the string representation of the operation status
func (s Status) String() string {
	switch s {
	case Queued:
		return "queued"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// IsFinal returns true if the operation is no longer waiting to be processed
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled || s == Failed
}
