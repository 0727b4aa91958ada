package promreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPoolUnbounded(t *testing.T) {
	p := newRecordPool(0)
	for i := 0; i < 1000; i++ {
		_, err := p.acquire()
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1000, p.live.Load())
}

func TestRecordPoolBounded(t *testing.T) {
	p := newRecordPool(3)
	for i := 0; i < 3; i++ {
		_, err := p.acquire()
		require.NoError(t, err)
	}
	_, err := p.acquire()
	assert.ErrorIs(t, err, ErrAllocationFailed)

	p.release()
	_, err = p.acquire()
	assert.NoError(t, err)
}
