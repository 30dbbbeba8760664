package config

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"piano-ledmap/internal/allocate"
)

type failingStore struct {
	*MemStore
	failSets bool
}

func (f *failingStore) Set(category, key string, value []byte) error {
	if f.failSets {
		return errors.New("disk full")
	}
	return f.MemStore.Set(category, key, value)
}

func newTestManager(t *testing.T) (*Manager, *MemStore) {
	t.Helper()
	store := NewMemStore()
	m, err := NewManager(store)
	require.NoError(t, err)
	return m, store
}

func TestNewManagerWritesDefaults(t *testing.T) {
	m, store := newTestManager(t)

	cal, found, err := LoadCalibration(store)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, DefaultCalibration(), cal)
	assert.Equal(t, uint64(0), m.Generation())
}

func TestMutationsPersistAndReload(t *testing.T) {
	m, store := newTestManager(t)

	require.NoError(t, m.SetWeld(100, 3.5))
	require.NoError(t, m.SetKeyOffset(12, -1))
	require.NoError(t, m.SetOverride(60, []int{130, 128, 129}))
	require.NoError(t, m.SetGlobalOffset(2))
	assert.Equal(t, uint64(4), m.Generation())

	reloaded, err := NewManager(store)
	require.NoError(t, err)
	cal := reloaded.Current()
	assert.Equal(t, 3.5, cal.WeldOffsets[100])
	assert.Equal(t, -1, cal.KeyOffsets[12])
	assert.Equal(t, []int{128, 129, 130}, cal.Overrides[60], "override list is stored sorted")
	assert.Equal(t, 2, cal.GlobalOffset)
}

func TestValidationRejectsBadValues(t *testing.T) {
	m, _ := newTestManager(t)

	cases := []struct {
		name string
		call func() error
	}{
		{"weld index past capacity", func() error { return m.SetWeld(StripCapacityLEDs, 1.0) }},
		{"weld offset too large", func() error { return m.SetWeld(100, 10.5) }},
		{"weld offset too negative", func() error { return m.SetWeld(100, -10.5) }},
		{"key offset bad key", func() error { return m.SetKeyOffset(-1, 1) }},
		{"key offset past keyboard", func() error { return m.SetKeyOffset(88, 1) }},
		{"override bad key", func() error { return m.SetOverride(200, []int{1}) }},
		{"override duplicate led", func() error { return m.SetOverride(10, []int{5, 5}) }},
		{"override led past capacity", func() error { return m.SetOverride(10, []int{StripCapacityLEDs}) }},
		{"window inverted", func() error { return m.SetWindow(100, 50) }},
		{"window past capacity", func() error { return m.SetWindow(0, StripCapacityLEDs) }},
		{"zero density", func() error { return m.SetStrip(0, 5.0) }},
		{"unknown keyboard size", func() error { return m.SetKeyboardSize(42) }},
		{"overhang limit out of range", func() error {
			return m.SetStrategy(allocate.Strategy{Mode: allocate.PhysicsBased, OverhangLimitMM: 0.1})
		}},
		{"fixed count zero", func() error {
			return m.SetStrategy(allocate.Strategy{Mode: allocate.FixedCount})
		}},
	}

	before := m.Current()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
		})
	}
	assert.Equal(t, before, m.Current(), "rejected mutations must not change state")
	assert.Equal(t, uint64(0), m.Generation())
}

func TestShrinkingKeyboardRejectsStaleEntries(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.SetKeyOffset(80, 1))
	err := m.SetKeyboardSize(61)
	require.Error(t, err)

	cal := m.Current()
	assert.Equal(t, 88, cal.KeyCount)
	assert.Equal(t, 1, cal.KeyOffsets[80])
}

func TestStoreFailureLeavesStateUnchanged(t *testing.T) {
	store := &failingStore{MemStore: NewMemStore()}
	m, err := NewManager(store)
	require.NoError(t, err)

	require.NoError(t, m.SetGlobalOffset(1))
	before := m.Current()
	gen := m.Generation()

	store.failSets = true
	err = m.SetGlobalOffset(5)
	require.Error(t, err)

	assert.Equal(t, before, m.Current())
	assert.Equal(t, gen, m.Generation())

	store.failSets = false
	require.NoError(t, m.SetGlobalOffset(5))
	assert.Equal(t, 5, m.Current().GlobalOffset)
	assert.Equal(t, gen+1, m.Generation())
}

func TestKeyOffsetZeroRemovesEntry(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.SetKeyOffset(40, 2))
	require.NoError(t, m.SetKeyOffset(40, 0))
	assert.NotContains(t, m.Current().KeyOffsets, 40)
}

func TestClearWeldAndOverride(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.SetWeld(50, -2.0))
	require.NoError(t, m.SetOverride(3, []int{10, 11}))
	require.NoError(t, m.ClearWeld(50))
	require.NoError(t, m.ClearOverride(3))

	cal := m.Current()
	assert.Empty(t, cal.WeldOffsets)
	assert.Empty(t, cal.Overrides)
}

func TestEventsFireAfterCommit(t *testing.T) {
	m, _ := newTestManager(t)

	var weldEvents, anyEvents []Event
	m.On(EventWeldsChanged, func(ev Event) { weldEvents = append(weldEvents, ev) })
	m.On(EventCalibrationChanged, func(ev Event) { anyEvents = append(anyEvents, ev) })

	require.NoError(t, m.SetWeld(100, 1.0))
	require.NoError(t, m.SetGlobalOffset(1))

	require.Len(t, weldEvents, 1)
	assert.Equal(t, EventWeldsChanged, weldEvents[0].Type)
	assert.Equal(t, uint64(1), weldEvents[0].Generation)
	assert.NotEqual(t, uuid.Nil, weldEvents[0].ID)

	require.Len(t, anyEvents, 2)
	assert.Equal(t, EventOffsetsChanged, anyEvents[1].Type)
	assert.Equal(t, uint64(2), anyEvents[1].Generation)
}

func TestNoEventOnRejectedMutation(t *testing.T) {
	m, _ := newTestManager(t)

	fired := 0
	m.On(EventCalibrationChanged, func(Event) { fired++ })

	require.Error(t, m.SetWeld(100, 99.0))
	assert.Equal(t, 0, fired)
}

func TestCurrentReturnsIndependentCopy(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.SetOverride(10, []int{20, 21}))

	cal := m.Current()
	cal.Overrides[10][0] = 999
	cal.KeyOffsets = map[int]int{5: 5}

	fresh := m.Current()
	assert.Equal(t, []int{20, 21}, fresh.Overrides[10])
	assert.Empty(t, fresh.KeyOffsets)
}

func TestResetRestoresDefaults(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.SetGlobalOffset(3))
	require.NoError(t, m.SetWeld(10, 1.0))
	gen := m.Generation()

	require.NoError(t, m.Reset())
	cal := m.Current()
	assert.Equal(t, 0, cal.GlobalOffset)
	assert.Empty(t, cal.WeldOffsets)
	assert.Equal(t, gen+1, m.Generation())
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	m, _ := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cal := m.Current()
				// A snapshot is internally consistent even mid-mutation.
				assert.LessOrEqual(t, cal.StartLED, cal.EndLED)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			_ = m.SetGlobalOffset(j % 5)
		}
	}()
	wg.Wait()
}
