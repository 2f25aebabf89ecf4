package wizard

import (
	"fmt"

	"lesson_planning_bot/internal/domain/planning"
)

var ErrUnknownVariant = fmt.Errorf("unknown wizard variant")

const (
	VariantClassic    = "classic"
	VariantMonthly    = "monthly"
	VariantMultiMonth = "multi_month"
)

// Variant configures the state machine: which steps exist, how each one is
// gated, and how periods are chosen.
type Variant struct {
	Name  string
	Steps []Step
	Gates map[Step]Gate
	// MaxPeriods caps the selection; 0 means unlimited. With 1, adding a
	// period replaces the current one.
	MaxPeriods int
	// ImplicitPeriod selects the session's current month up front; the user
	// never sees a period step.
	ImplicitPeriod bool
}

// MultiPeriod reports whether the user plans more than one period.
func (v Variant) MultiPeriod() bool {
	return v.MaxPeriods != 1 && !v.ImplicitPeriod
}

// CanAdvance evaluates the gate of step; ungated steps always pass.
func (v Variant) CanAdvance(step Step, f *planning.Form) bool {
	g, ok := v.Gates[step]
	if !ok {
		return true
	}
	return g(f)
}

// HasStep reports whether step is part of the variant.
func (v Variant) HasStep(step Step) bool {
	for _, s := range v.Steps {
		if s == step {
			return true
		}
	}
	return false
}

func weekGates(gates map[Step]Gate) map[Step]Gate {
	gates[StepWeek1] = WeekGate(planning.Week1)
	gates[StepWeek2] = WeekGate(planning.Week2)
	gates[StepWeek3] = WeekGate(planning.Week3)
	gates[StepWeek4] = WeekGate(planning.Week4)
	return gates
}

// Classic is the single-month form: name, subject, four week
// screens, notes.
func Classic() Variant {
	return Variant{
		Name: VariantClassic,
		Steps: []Step{
			StepStart, StepName, StepSubject,
			StepWeek1, StepWeek2, StepWeek3, StepWeek4,
			StepNotes, StepFinal,
		},
		Gates: weekGates(map[Step]Gate{
			StepName:    NameGate(false),
			StepSubject: SubjectGate,
		}),
		MaxPeriods:     1,
		ImplicitPeriod: true,
	}
}

// Monthly lets the user pick the one month being planned.
func Monthly() Variant {
	return Variant{
		Name: VariantMonthly,
		Steps: []Step{
			StepStart, StepName, StepSubject, StepMonth,
			StepWeek1, StepWeek2, StepWeek3, StepWeek4,
			StepNotes, StepFinal,
		},
		Gates: weekGates(map[Step]Gate{
			StepName:    NameGate(true),
			StepSubject: SubjectGate,
			StepMonth:   PeriodSelectionGate,
		}),
		MaxPeriods: 1,
	}
}

// MultiMonth plans any number of months on a single planning screen.
func MultiMonth() Variant {
	return Variant{
		Name: VariantMultiMonth,
		Steps: []Step{
			StepStart, StepName, StepSubject, StepPeriods,
			StepPlanning, StepNotes, StepFinal,
		},
		Gates: map[Step]Gate{
			StepName:     NameGate(true),
			StepSubject:  SubjectGate,
			StepPeriods:  PeriodSelectionGate,
			StepPlanning: PlanningGate,
		},
	}
}

// VariantByName resolves a configured variant name.
func VariantByName(name string) (Variant, error) {
	switch name {
	case VariantClassic:
		return Classic(), nil
	case VariantMonthly:
		return Monthly(), nil
	case VariantMultiMonth, "":
		return MultiMonth(), nil
	default:
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}
