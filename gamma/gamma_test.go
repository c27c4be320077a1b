package gamma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityMap(t *testing.T) {
	t.Parallel()

	m := Identity(DefaultResolution)
	assert.False(t, m.Corrected())
	assert.Equal(t, uint16(255), m.BiggestStep())
	assert.Equal(t, uint16(42), m.Level(42))

	// out of range values are clamped by the public accessor
	assert.Equal(t, uint16(255), m.Value(300))
}

func TestTableMap(t *testing.T) {
	t.Parallel()

	table := Slice{0, 1, 4, 9, 16}
	m := New(table, 4)
	require.True(t, m.Corrected())

	assert.Equal(t, uint16(9), m.Level(3))
	assert.Equal(t, uint16(16), m.Value(4))
	assert.Equal(t, uint16(16), m.Value(1000))
}

func TestNewCapsBiggestStepToTable(t *testing.T) {
	t.Parallel()

	m := New(Slice{0, 10, 20}, 100)
	assert.Equal(t, uint16(2), m.BiggestStep())
	assert.Equal(t, uint16(20), m.Value(100))
}

func TestNewWithoutTableIsIdentity(t *testing.T) {
	t.Parallel()

	m := New(nil, 1023)
	assert.False(t, m.Corrected())
	assert.Equal(t, uint16(1023), m.BiggestStep())
	assert.Equal(t, uint16(700), m.Value(700))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Slice{0, 0, 1, 5}.Validate())
	require.Error(t, Slice{}.Validate())
	require.Error(t, Slice{0, 5, 3}.Validate())
}
