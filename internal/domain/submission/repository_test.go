package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingRecorder struct {
	n   int
	err error
}

func (c *countingRecorder) Record(context.Context, *Attempt) error {
	c.n++
	return c.err
}

func TestRecorders_FansOutAndJoinsErrors(t *testing.T) {
	boom := errors.New("db down")
	ok := &countingRecorder{}
	failing := &countingRecorder{err: boom}

	err := Recorders(ok, nil, failing).Record(context.Background(), &Attempt{})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, ok.n)
	assert.Equal(t, 1, failing.n)
	assert.NoError(t, Recorders().Record(context.Background(), &Attempt{}))
}
