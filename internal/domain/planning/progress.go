package planning

// UploadStatus mirrors the percentage-style codes shown to the user.
type UploadStatus int

const (
	UploadPending  UploadStatus = 0
	UploadComplete UploadStatus = 100
	UploadFailed   UploadStatus = -1
)

// ProgressKey addresses one week's attachment.
type ProgressKey struct {
	Period PeriodKey
	Week   WeekKey
}

// UploadProgress tracks per-file upload status for feedback only.
type UploadProgress map[ProgressKey]UploadStatus

// Clone copies the map.
func (p UploadProgress) Clone() UploadProgress {
	c := make(UploadProgress, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}
