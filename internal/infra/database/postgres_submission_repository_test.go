package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodKeysArg(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"nil keys bind as empty array", nil, "{}"},
		{"empty keys", []string{}, "{}"},
		{"selected periods", []string{"2025-09", "2025-10"}, `{"2025-09","2025-10"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := periodKeysArg(tt.keys).Value()
			require.NoError(t, err)
			require.NotNil(t, v)
			assert.Equal(t, tt.want, v)
		})
	}
}
