package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitMilliseconds(t *testing.T) {
	tests := []struct {
		wait Wait
		bpm  float64
		ms   float64
	}{
		{Wait{250, "ms"}, 0, 250},
		{Wait{2, "s"}, 0, 2000},
		{Wait{1.5, "min"}, 0, 90000},
		{Wait{4, "beats"}, 120, 2000},
		{Wait{1, "beat"}, 60, 1000},
	}
	for _, test := range tests {
		ms, err := test.wait.Milliseconds(test.bpm)
		assert.NoError(t, err)
		assert.InDelta(t, test.ms, ms, 1e-9, "%v", test.wait)
	}
	_, err := (&Wait{4, "beats"}).Milliseconds(0)
	assert.Error(t, err)
	_, err = (&Wait{4, "fortnights"}).Milliseconds(60)
	assert.Error(t, err)
}
