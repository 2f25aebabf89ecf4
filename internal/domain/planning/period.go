package planning

import (
	"fmt"
	"strconv"
	"strings"
)

// Custom errors for period selection
var ErrInvalidPeriod = fmt.Errorf("invalid period")
var ErrDuplicatePeriod = fmt.Errorf("period already selected")
var ErrPeriodIndexOutOfRange = fmt.Errorf("period index out of range")
var ErrPeriodNotFound = fmt.Errorf("no plan for period")

const minYear = 2000

// PeriodKey identifies the plan of one (month, year) pair, formatted as YYYY-MM.
type PeriodKey string

// Period is one selected planning month.
type Period struct {
	Month int
	Year  int
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Key derives the storage key for the period.
func (p Period) Key() PeriodKey {
	return PeriodKey(fmt.Sprintf("%04d-%02d", p.Year, p.Month))
}

// Tag is the label used in messages, e.g. "Setembro/2025".
func (p Period) Tag() string {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Sprintf("%02d/%d", p.Month, p.Year)
	}
	return fmt.Sprintf("%s/%d", monthNames[p.Month-1], p.Year)
}

// Validate checks the month range and a sane lower bound for the year.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Month)
	}
	if p.Year < minYear {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, p.Year)
	}
	return nil
}

// ParsePeriod reads "MM/AAAA" (also accepts "M/AAAA" and "MM-AAAA").
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, "/-")
	if sep <= 0 || sep == len(s)-1 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	month, err := strconv.Atoi(s[:sep])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	year, err := strconv.Atoi(s[sep+1:])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}
