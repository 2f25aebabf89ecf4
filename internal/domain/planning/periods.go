package planning

import "fmt"

// Periods keeps the ordered list of selected periods and one plan per period.
// Every mutation finishes with Reconcile, so Selected and the plan map never
// disagree once a call returns.
type Periods struct {
	selected []Period
	plans    map[PeriodKey]*PeriodPlan
}

// NewPeriods returns an empty selection.
func NewPeriods() *Periods {
	return &Periods{plans: make(map[PeriodKey]*PeriodPlan)}
}

// Len is the number of selected periods.
func (ps *Periods) Len() int {
	return len(ps.selected)
}

// Selected returns a copy of the selection in user order.
func (ps *Periods) Selected() []Period {
	out := make([]Period, len(ps.selected))
	copy(out, ps.selected)
	return out
}

// Plan returns the plan stored under key.
func (ps *Periods) Plan(key PeriodKey) (*PeriodPlan, bool) {
	pp, ok := ps.plans[key]
	return pp, ok
}

// PlanAt returns the plan of the period at index.
func (ps *Periods) PlanAt(index int) (*PeriodPlan, error) {
	if index < 0 || index >= len(ps.selected) {
		return nil, fmt.Errorf("%w: %d", ErrPeriodIndexOutOfRange, index)
	}
	return ps.plans[ps.selected[index].Key()], nil
}

func (ps *Periods) indexOf(key PeriodKey) int {
	for i, p := range ps.selected {
		if p.Key() == key {
			return i
		}
	}
	return -1
}

// Add appends a period and materializes its plan.
func (ps *Periods) Add(month, year int) error {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return err
	}
	if ps.indexOf(p.Key()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicatePeriod, p.Tag())
	}
	ps.selected = append(ps.selected, p)
	ps.Reconcile()
	return nil
}

// Remove deletes the period at index together with its plan.
func (ps *Periods) Remove(index int) error {
	if index < 0 || index >= len(ps.selected) {
		return fmt.Errorf("%w: %d", ErrPeriodIndexOutOfRange, index)
	}
	key := ps.selected[index].Key()
	ps.selected = append(ps.selected[:index], ps.selected[index+1:]...)
	delete(ps.plans, key)
	ps.Reconcile()
	return nil
}

// Edit changes the identity of the period at index. The plan moves to the new
// key; it is neither copied nor dropped.
func (ps *Periods) Edit(index, month, year int) error {
	if index < 0 || index >= len(ps.selected) {
		return fmt.Errorf("%w: %d", ErrPeriodIndexOutOfRange, index)
	}
	next := Period{Month: month, Year: year}
	if err := next.Validate(); err != nil {
		return err
	}
	oldKey, newKey := ps.selected[index].Key(), next.Key()
	if oldKey == newKey {
		return nil
	}
	if ps.indexOf(newKey) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicatePeriod, next.Tag())
	}

	pp, ok := ps.plans[oldKey]
	if !ok {
		pp = NewPeriodPlan(next)
	}
	delete(ps.plans, oldKey)
	pp.Month, pp.Year = next.Month, next.Year
	ps.plans[newKey] = pp
	ps.selected[index] = next
	ps.Reconcile()
	return nil
}

// Reconcile gives every selected period exactly one plan and evicts plans no
// period points at. Running it again without changes is a no-op.
func (ps *Periods) Reconcile() {
	if ps.plans == nil {
		ps.plans = make(map[PeriodKey]*PeriodPlan)
	}
	wanted := make(map[PeriodKey]struct{}, len(ps.selected))
	for _, p := range ps.selected {
		key := p.Key()
		wanted[key] = struct{}{}
		if _, ok := ps.plans[key]; !ok {
			ps.plans[key] = NewPeriodPlan(p)
		}
	}
	for key := range ps.plans {
		if _, ok := wanted[key]; !ok {
			delete(ps.plans, key)
		}
	}
}

// Clone deep-copies the selection and its plans.
func (ps *Periods) Clone() *Periods {
	c := &Periods{
		selected: ps.Selected(),
		plans:    make(map[PeriodKey]*PeriodPlan, len(ps.plans)),
	}
	for k, pp := range ps.plans {
		c.plans[k] = pp.clone()
	}
	return c
}
