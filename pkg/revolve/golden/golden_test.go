package golden_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/revolve/pkg/revolve"
	"github.com/randalmurphal/revolve/pkg/revolve/golden"
)

func TestFixtures_NonEmptyAndKeyed(t *testing.T) {
	fixtures := golden.Fixtures()
	require.NotEmpty(t, fixtures)

	seen := map[string]bool{}
	for _, f := range fixtures {
		assert.NotEmpty(t, f.Key)
		assert.False(t, seen[f.Key], "duplicate fixture key %q", f.Key)
		seen[f.Key] = true
		assert.NotEmpty(t, f.Actions)
	}
}

func TestFixtures_EveryStreamEndsWithEndReverse(t *testing.T) {
	for _, f := range golden.Fixtures() {
		last := f.Actions[len(f.Actions)-1]
		_, ok := last.(revolve.EndReverse)
		assert.Truef(t, ok || isOnlyForwardPhase(f.Actions), "fixture %q must end with EndReverse", f.Key)
	}
}

// isOnlyForwardPhase recognizes the one fixture (None) that never enters a
// reverse sweep because None carries no adjoint-dependency data.
func isOnlyForwardPhase(actions []revolve.Action) bool {
	for _, a := range actions {
		if _, ok := a.(revolve.EndForward); ok {
			continue
		}
		if _, ok := a.(revolve.Forward); ok {
			continue
		}
		return false
	}
	return true
}

// TestLiveSchedules_MatchGoldenFixtures constructs each fixture's schedule
// from its live constructor and diffs the emitted action stream against
// the fixture, catching adapter/translation regressions that a pure
// store round-trip of the fixture literals can never see.
func TestLiveSchedules_MatchGoldenFixtures(t *testing.T) {
	cases := []struct {
		key   string
		build func() (revolve.Schedule, error)
	}{
		{"none/max_n=4", func() (revolve.Schedule, error) {
			return revolve.NewNone(), nil
		}},
		{"single_memory/max_n=4", func() (revolve.Schedule, error) {
			return revolve.NewSingleMemory(), nil
		}},
		{"single_disk/max_n=4/move_data=true", func() (revolve.Schedule, error) {
			return revolve.NewSingleDisk(true), nil
		}},
		{"revolve/max_n=4/snaps_in_ram=2", func() (revolve.Schedule, error) {
			return revolve.NewRevolve(revolve.RevolveParams{
				MaxN:       4,
				SnapsInRAM: 2,
				Cost:       revolve.DefaultCostParams(),
			})
		}},
		{"multistage/max_n=4/snaps_in_ram=1/snaps_on_disk=1", func() (revolve.Schedule, error) {
			return revolve.NewMultistage(revolve.MultistageParams{
				MaxN:        4,
				SnapsInRAM:  1,
				SnapsOnDisk: 1,
			})
		}},
		{"mixed/max_n=4/snaps_on_disk=1", func() (revolve.Schedule, error) {
			return revolve.NewMixed(revolve.MixedParams{MaxN: 4, Snapshots: 1})
		}},
	}

	fixtures := map[string][]revolve.Action{}
	for _, f := range golden.Fixtures() {
		fixtures[f.Key] = f.Actions
	}

	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			want, ok := fixtures[c.key]
			require.True(t, ok, "no fixture registered for key %q", c.key)

			sched, err := c.build()
			require.NoError(t, err)

			got := make([]revolve.Action, 0, len(want))
			for len(got) < len(want) {
				a := sched.NextAction()
				if fwd, ok := a.(revolve.Forward); ok && fwd.N1 == revolve.IntMax {
					require.NoError(t, sched.Finalize(4))
				}
				got = append(got, a)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestMemoryStore_SaveLoadRoundTrip(t *testing.T) {
	store := golden.NewMemoryStore()
	defer store.Close()

	require.NoError(t, golden.Seed(store))
	assert.Equal(t, len(golden.Fixtures()), store.Len())

	for _, f := range golden.Fixtures() {
		got, err := store.Load(f.Key)
		require.NoError(t, err)
		assert.Equal(t, f.Actions, got)
	}
}

func TestMemoryStore_LoadMissingKeyReturnsNotFound(t *testing.T) {
	store := golden.NewMemoryStore()
	defer store.Close()

	_, err := store.Load("does-not-exist")
	assert.ErrorIs(t, err, golden.ErrNotFound)
}

func TestMemoryStore_DeleteRemovesFixture(t *testing.T) {
	store := golden.NewMemoryStore()
	defer store.Close()

	require.NoError(t, store.Save("k", []revolve.Action{revolve.EndReverse{}}))
	require.NoError(t, store.Delete("k"))

	_, err := store.Load("k")
	assert.ErrorIs(t, err, golden.ErrNotFound)
}

func TestMemoryStore_ListOrderedByKey(t *testing.T) {
	store := golden.NewMemoryStore()
	defer store.Close()
	require.NoError(t, golden.Seed(store))

	infos, err := store.List()
	require.NoError(t, err)
	require.Len(t, infos, len(golden.Fixtures()))
	for i := 1; i < len(infos); i++ {
		assert.LessOrEqual(t, infos[i-1].Key, infos[i].Key)
	}
}

func TestMemoryStore_OperationsAfterCloseFail(t *testing.T) {
	store := golden.NewMemoryStore()
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Save("k", []revolve.Action{revolve.EndReverse{}}), golden.ErrStoreClosed)
	_, err := store.Load("k")
	assert.ErrorIs(t, err, golden.ErrStoreClosed)
	_, err = store.List()
	assert.ErrorIs(t, err, golden.ErrStoreClosed)
	assert.ErrorIs(t, store.Delete("k"), golden.ErrStoreClosed)
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := golden.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, golden.Seed(store))

	for _, f := range golden.Fixtures() {
		got, err := store.Load(f.Key)
		require.NoError(t, err)
		assert.Equal(t, f.Actions, got)
	}

	infos, err := store.List()
	require.NoError(t, err)
	assert.Len(t, infos, len(golden.Fixtures()))
}

func TestSQLiteStore_SaveOverwritesExistingKey(t *testing.T) {
	store, err := golden.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save("k", []revolve.Action{revolve.EndReverse{}}))
	require.NoError(t, store.Save("k", []revolve.Action{
		revolve.Forward{N0: 0, N1: 1},
		revolve.EndReverse{},
	}))

	got, err := store.Load("k")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSQLiteStore_DeleteMissingKeyIsNoop(t *testing.T) {
	store, err := golden.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Delete("does-not-exist"))
}

func TestSQLiteStore_RoundTripPreservesIntMaxSentinel(t *testing.T) {
	store, err := golden.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	actions := []revolve.Action{
		revolve.Forward{N0: 0, N1: revolve.IntMax, WriteAdjDeps: true, Storage: revolve.WORK},
		revolve.EndForward{},
	}
	require.NoError(t, store.Save("unbounded", actions))

	got, err := store.Load("unbounded")
	require.NoError(t, err)
	require.Len(t, got, 2)
	fwd, ok := got[0].(revolve.Forward)
	require.True(t, ok)
	assert.Equal(t, revolve.IntMax, fwd.N1)
}
