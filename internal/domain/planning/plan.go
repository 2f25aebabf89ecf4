package planning

// PeriodPlan holds the four weeks and general notes for one period.
// Month and Year always match the key the plan is stored under.
type PeriodPlan struct {
	Month        int
	Year         int
	Weeks        [4]WeekEntry
	GeneralNotes string
}

// NewPeriodPlan returns an empty plan for p.
func NewPeriodPlan(p Period) *PeriodPlan {
	return &PeriodPlan{Month: p.Month, Year: p.Year}
}

// Period returns the (month, year) the plan belongs to.
func (pp *PeriodPlan) Period() Period {
	return Period{Month: pp.Month, Year: pp.Year}
}

// Week returns the entry for w, or nil for an unknown key.
func (pp *PeriodPlan) Week(w WeekKey) *WeekEntry {
	i := w.Index()
	if i < 0 {
		return nil
	}
	return &pp.Weeks[i]
}

// Attachments lists the weeks that carry a file, in week order.
func (pp *PeriodPlan) Attachments() []WeekKey {
	var keys []WeekKey
	for i, w := range pp.Weeks {
		if w.AttachedFile != nil {
			keys = append(keys, Weeks[i])
		}
	}
	return keys
}

func (pp *PeriodPlan) clone() *PeriodPlan {
	c := *pp
	for i := range c.Weeks {
		c.Weeks[i] = pp.Weeks[i].clone()
	}
	return &c
}
