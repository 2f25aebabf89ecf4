package planning

import "fmt"

// Form is the full answer set of one wizard session.
type Form struct {
	RespondentName string
	AcademicYear   string
	GradeLevel     string
	Subject        Subject
	Periods        *Periods
}

// FormPatch is a partial update of the top-level fields. Nil fields are kept.
type FormPatch struct {
	RespondentName *string
	AcademicYear   *string
	GradeLevel     *string
	Subject        *Subject
}

// NewForm returns the initial empty form.
func NewForm() *Form {
	return &Form{Periods: NewPeriods()}
}

// Patch shallow-merges p into the form.
func (f *Form) Patch(p FormPatch) {
	if p.RespondentName != nil {
		f.RespondentName = *p.RespondentName
	}
	if p.AcademicYear != nil {
		f.AcademicYear = *p.AcademicYear
	}
	if p.GradeLevel != nil {
		f.GradeLevel = *p.GradeLevel
	}
	if p.Subject != nil {
		f.Subject = *p.Subject
	}
}

func (f *Form) week(key PeriodKey, week WeekKey) (*WeekEntry, error) {
	pp, ok := f.Periods.Plan(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPeriodNotFound, key)
	}
	e := pp.Week(week)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWeek, week)
	}
	return e, nil
}

// PatchWeek merges p into one week entry without touching its siblings.
func (f *Form) PatchWeek(key PeriodKey, week WeekKey, p WeekPatch) error {
	e, err := f.week(key, week)
	if err != nil {
		return err
	}
	e.apply(p)
	return nil
}

// SetUploadedURL records where an attachment ended up.
func (f *Form) SetUploadedURL(key PeriodKey, week WeekKey, url string) error {
	e, err := f.week(key, week)
	if err != nil {
		return err
	}
	e.UploadedURL = url
	return nil
}

// SetNotes replaces the general notes of a plan.
func (f *Form) SetNotes(key PeriodKey, notes string) error {
	pp, ok := f.Periods.Plan(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPeriodNotFound, key)
	}
	pp.GeneralNotes = notes
	return nil
}

// Clone deep-copies the form, including every plan.
func (f *Form) Clone() *Form {
	c := *f
	c.Periods = f.Periods.Clone()
	return &c
}

// Text is a helper for building patches from literals.
func Text(s string) *string {
	return &s
}
