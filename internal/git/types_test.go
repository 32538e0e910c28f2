package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStatus(t *testing.T) {
	tests := []struct {
		name          string
		ahead, behind int
		wantDiverged  bool
		wantInSync    bool
	}{
		{"in sync", 0, 0, false, true},
		{"ahead only", 2, 0, false, false},
		{"behind only", 0, 5, false, false},
		{"diverged", 1, 1, true, false},
		{"negative counts clamp to zero", -1, -4, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStatus(tt.ahead, tt.behind, true)

			assert.GreaterOrEqual(t, s.Ahead, 0)
			assert.GreaterOrEqual(t, s.Behind, 0)
			assert.Equal(t, tt.wantDiverged, s.Diverged)
			assert.Equal(t, s.Ahead > 0 && s.Behind > 0, s.Diverged)
			assert.Equal(t, tt.wantInSync, s.InSync())
			assert.True(t, s.Clean)
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ahead=1 behind=2 diverged=true clean=false", NewStatus(1, 2, false).String())
}
