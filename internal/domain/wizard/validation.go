package wizard

import (
	"strings"

	"lesson_planning_bot/internal/domain/planning"
)

// Gate decides whether the user may leave a step. Gates are pure.
type Gate func(f *planning.Form) bool

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

// NameGate requires a respondent name and, when requireSchoolInfo is set, an
// academic year and grade level.
func NameGate(requireSchoolInfo bool) Gate {
	return func(f *planning.Form) bool {
		if !filled(f.RespondentName) {
			return false
		}
		if requireSchoolInfo {
			return filled(f.AcademicYear) && filled(f.GradeLevel)
		}
		return true
	}
}

// SubjectGate requires one of the known subjects.
func SubjectGate(f *planning.Form) bool {
	return f.Subject.Valid()
}

// PeriodSelectionGate requires at least one selected period.
func PeriodSelectionGate(f *planning.Form) bool {
	return f.Periods.Len() > 0
}

// PlanningGate requires content for all four weeks of every selected period.
func PlanningGate(f *planning.Form) bool {
	if f.Periods.Len() == 0 {
		return false
	}
	for _, p := range f.Periods.Selected() {
		pp, ok := f.Periods.Plan(p.Key())
		if !ok {
			return false
		}
		for _, w := range pp.Weeks {
			if !filled(w.ContentText) {
				return false
			}
		}
	}
	return true
}

// WeekGate applies the content rule to one week of the single implicit period.
func WeekGate(week planning.WeekKey) Gate {
	return func(f *planning.Form) bool {
		pp, err := f.Periods.PlanAt(0)
		if err != nil || pp == nil {
			return false
		}
		e := pp.Week(week)
		return e != nil && filled(e.ContentText)
	}
}
