package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocus_NextAndPrev(t *testing.T) {
	f := focus{Period: 0, Week: 3}
	f = f.next(2)
	assert.Equal(t, focus{Period: 1, Week: 0}, f)

	f = focus{Period: 1, Week: 3}.next(2)
	assert.Equal(t, focus{Period: 1, Week: 3}, f, "stays on the last week")

	assert.Equal(t, focus{Period: 0, Week: 3}, focus{Period: 1, Week: 0}.prev())
	assert.Equal(t, focus{}, focus{}.prev())
}

func TestFocus_Clamp(t *testing.T) {
	assert.Equal(t, focus{Period: 1, Week: 2}, focus{Period: 5, Week: 2}.clamp(2))
	assert.Equal(t, focus{Period: 0, Week: 0}, focus{Period: 3, Week: 9}.clamp(0))
}
