package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriods_AddMaterializesEmptyPlan(t *testing.T) {
	ps := NewPeriods()
	require.NoError(t, ps.Add(9, 2025))

	pp, ok := ps.Plan(Period{Month: 9, Year: 2025}.Key())
	require.True(t, ok)
	assert.Equal(t, 9, pp.Month)
	assert.Equal(t, 2025, pp.Year)
	assert.Empty(t, pp.GeneralNotes)
	for _, w := range pp.Weeks {
		assert.Equal(t, WeekEntry{}, w)
	}
}

func TestPeriods_ReconcileIsIdempotent(t *testing.T) {
	ps := NewPeriods()
	require.NoError(t, ps.Add(9, 2025))
	key := Period{Month: 9, Year: 2025}.Key()

	pp, _ := ps.Plan(key)
	pp.Weeks[0].ContentText = "Frações"

	ps.Reconcile()
	ps.Reconcile()

	again, ok := ps.Plan(key)
	require.True(t, ok)
	assert.Same(t, pp, again)
	assert.Equal(t, "Frações", again.Weeks[0].ContentText)
	assert.Len(t, ps.plans, 1)
}

func TestPeriods_EditRelocatesPlan(t *testing.T) {
	ps := NewPeriods()
	require.NoError(t, ps.Add(9, 2025))
	oldKey := Period{Month: 9, Year: 2025}.Key()
	pp, _ := ps.Plan(oldKey)
	pp.Weeks[2].ContentText = "Equações"
	pp.GeneralNotes = "trazer régua"

	require.NoError(t, ps.Edit(0, 10, 2025))

	_, stillThere := ps.Plan(oldKey)
	assert.False(t, stillThere)

	moved, ok := ps.Plan(Period{Month: 10, Year: 2025}.Key())
	require.True(t, ok)
	assert.Equal(t, "Equações", moved.Weeks[2].ContentText)
	assert.Equal(t, "trazer régua", moved.GeneralNotes)
	assert.Equal(t, 10, moved.Month)
	assert.Len(t, ps.plans, 1)
	assert.Equal(t, []Period{{Month: 10, Year: 2025}}, ps.Selected())
}

func TestPeriods_EditSameKeyIsNoop(t *testing.T) {
	ps := NewPeriods()
	require.NoError(t, ps.Add(9, 2025))
	require.NoError(t, ps.Edit(0, 9, 2025))
	assert.Equal(t, 1, ps.Len())
}

func TestPeriods_RemoveEvictsOnlyItsPlan(t *testing.T) {
	ps := NewPeriods()
	require.NoError(t, ps.Add(8, 2025))
	require.NoError(t, ps.Add(9, 2025))
	require.NoError(t, ps.Add(10, 2025))

	aug, _ := ps.Plan(Period{Month: 8, Year: 2025}.Key())
	aug.Weeks[0].ContentText = "agosto"
	oct, _ := ps.Plan(Period{Month: 10, Year: 2025}.Key())
	oct.Weeks[0].ContentText = "outubro"

	require.NoError(t, ps.Remove(1))

	_, ok := ps.Plan(Period{Month: 9, Year: 2025}.Key())
	assert.False(t, ok)
	got, _ := ps.Plan(Period{Month: 8, Year: 2025}.Key())
	assert.Equal(t, "agosto", got.Weeks[0].ContentText)
	got, _ = ps.Plan(Period{Month: 10, Year: 2025}.Key())
	assert.Equal(t, "outubro", got.Weeks[0].ContentText)
	assert.Equal(t, []Period{{8, 2025}, {10, 2025}}, ps.Selected())
}

func TestPeriods_Errors(t *testing.T) {
	ps := NewPeriods()
	require.NoError(t, ps.Add(9, 2025))
	require.NoError(t, ps.Add(10, 2025))

	assert.ErrorIs(t, ps.Add(9, 2025), ErrDuplicatePeriod)
	assert.ErrorIs(t, ps.Edit(1, 9, 2025), ErrDuplicatePeriod)
	assert.ErrorIs(t, ps.Add(13, 2025), ErrInvalidPeriod)
	assert.ErrorIs(t, ps.Add(0, 2025), ErrInvalidPeriod)
	assert.ErrorIs(t, ps.Remove(2), ErrPeriodIndexOutOfRange)
	assert.ErrorIs(t, ps.Edit(-1, 1, 2026), ErrPeriodIndexOutOfRange)
	assert.Equal(t, 2, ps.Len())
}

func TestPeriods_CloneIsDeep(t *testing.T) {
	ps := NewPeriods()
	require.NoError(t, ps.Add(9, 2025))
	c := ps.Clone()

	pp, _ := c.Plan(Period{Month: 9, Year: 2025}.Key())
	pp.Weeks[0].ContentText = "changed"

	orig, _ := ps.Plan(Period{Month: 9, Year: 2025}.Key())
	assert.Empty(t, orig.Weeks[0].ContentText)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"09/2025", Period{9, 2025}, false},
		{"9/2025", Period{9, 2025}, false},
		{" 12-2026 ", Period{12, 2026}, false},
		{"13/2025", Period{}, true},
		{"setembro", Period{}, true},
		{"09/", Period{}, true},
		{"09/1999", Period{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_KeyAndTag(t *testing.T) {
	p := Period{Month: 9, Year: 2025}
	assert.Equal(t, PeriodKey("2025-09"), p.Key())
	assert.Equal(t, "Setembro/2025", p.Tag())
}
