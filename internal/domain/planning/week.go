package planning

import (
	"context"
	"fmt"
	"io"
)

var ErrUnknownWeek = fmt.Errorf("unknown week")

// WeekKey names one of the four weeks of a plan.
type WeekKey string

const (
	Week1 WeekKey = "semana1"
	Week2 WeekKey = "semana2"
	Week3 WeekKey = "semana3"
	Week4 WeekKey = "semana4"
)

// Weeks is the fixed week order.
var Weeks = [4]WeekKey{Week1, Week2, Week3, Week4}

// Index returns the zero-based position of the week, or -1.
func (w WeekKey) Index() int {
	for i, k := range Weeks {
		if k == w {
			return i
		}
	}
	return -1
}

// Number is the 1-based week number used in prompts.
func (w WeekKey) Number() int {
	return w.Index() + 1
}

// FileSource opens the raw bytes of an attachment. Opening may hit the network.
type FileSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileRef is an attachment chosen by the respondent but not uploaded yet.
type FileRef struct {
	Name     string
	MimeType string
	Size     int64
	Source   FileSource
}

// WeekEntry is the content planned for one week.
type WeekEntry struct {
	ContentText  string
	Observation  string
	AttachedFile *FileRef
	UploadedURL  string
}

// WeekPatch is a partial update of a WeekEntry. Nil fields are left untouched.
type WeekPatch struct {
	ContentText     *string
	Observation     *string
	AttachedFile    *FileRef
	ClearAttachment bool
}

func (e *WeekEntry) apply(p WeekPatch) {
	if p.ContentText != nil {
		e.ContentText = *p.ContentText
	}
	if p.Observation != nil {
		e.Observation = *p.Observation
	}
	if p.ClearAttachment {
		e.AttachedFile = nil
		e.UploadedURL = ""
	}
	if p.AttachedFile != nil {
		f := *p.AttachedFile
		e.AttachedFile = &f
		e.UploadedURL = ""
	}
}

func (e WeekEntry) clone() WeekEntry {
	if e.AttachedFile != nil {
		f := *e.AttachedFile
		e.AttachedFile = &f
	}
	return e
}
