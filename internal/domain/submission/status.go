package submission

// Status is the state of the submission state machine.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusSending   Status = "sending"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

// InProgress is true while network calls are outstanding.
func (s Status) InProgress() bool {
	return s == StatusUploading || s == StatusSending
}

// Finished is true for the two terminal states.
func (s Status) Finished() bool {
	return s == StatusSuccess || s == StatusError
}
