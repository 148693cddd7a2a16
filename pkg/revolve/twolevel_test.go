package revolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/revolve/pkg/revolve"
)

// runTwoLevelForward drives sched's online forward phase until the
// proposed periodic checkpoint frontier has reached at least maxN, then
// finalizes at exactly maxN, mirroring a driver whose real forward
// computation terminates partway through the last proposed period chunk.
func runTwoLevelForward(t *testing.T, sched revolve.Schedule, maxN int) []revolve.Action {
	t.Helper()
	var actions []revolve.Action
	for {
		a := sched.NextAction()
		actions = append(actions, a)
		fwd, ok := a.(revolve.Forward)
		require.True(t, ok, "expected Forward action during the online forward phase")
		if fwd.N1 >= maxN {
			require.NoError(t, sched.Finalize(maxN))
			break
		}
	}
	end := sched.NextAction()
	_, ok := end.(revolve.EndForward)
	require.True(t, ok)
	actions = append(actions, end)
	return actions
}

// drainOneReverseSweep runs sched until EndReverse and returns every
// action emitted since the call began.
func drainOneReverseSweep(t *testing.T, sched revolve.Schedule) []revolve.Action {
	t.Helper()
	var actions []revolve.Action
	for i := 0; i < 100000; i++ {
		a := sched.NextAction()
		actions = append(actions, a)
		if _, ok := a.(revolve.EndReverse); ok {
			return actions
		}
	}
	t.Fatal("reverse sweep did not terminate with EndReverse")
	return nil
}

func assertReverseSweepCoversEveryStep(t *testing.T, actions []revolve.Action, maxN int) {
	t.Helper()
	reverseCovered := make(map[int]bool)
	for _, a := range actions {
		if r, ok := a.(revolve.Reverse); ok {
			for n := r.N0; n < r.N1; n++ {
				reverseCovered[n] = true
			}
		}
	}
	for n := 0; n < maxN; n++ {
		assert.True(t, reverseCovered[n], "step %d never reversed", n)
	}
	_, lastIsEndReverse := actions[len(actions)-1].(revolve.EndReverse)
	assert.True(t, lastIsEndReverse)
}

func TestTwoLevel_ForwardPhaseWritesPeriodicDiskCheckpoints(t *testing.T) {
	sched, err := revolve.NewTwoLevel(revolve.TwoLevelParams{Period: 3, BinomialSnapshots: 2})
	require.NoError(t, err)

	actions := runTwoLevelForward(t, sched, 10)
	for _, a := range actions {
		if fwd, ok := a.(revolve.Forward); ok {
			assert.True(t, fwd.WriteICS)
			assert.Equal(t, revolve.DISK, fwd.Storage)
		}
	}
	assert.True(t, sched.UsesDiskStorage())
}

func TestTwoLevel_ReverseSweepCoversEveryStepAndRepeats(t *testing.T) {
	for _, tc := range []struct {
		maxN, period, snapshots int
		storage                 revolve.StorageKind
	}{
		{7, 3, 1, revolve.DISK},
		{20, 4, 2, revolve.RAM},
		{20, 4, 2, revolve.DISK},
		{50, 7, 3, revolve.RAM},
		{1, 1, 0, revolve.DISK},
	} {
		sched, err := revolve.NewTwoLevel(revolve.TwoLevelParams{
			Period: tc.period, BinomialSnapshots: tc.snapshots, BinomialStorage: tc.storage,
		})
		require.NoError(t, err, "maxN=%d period=%d snapshots=%d", tc.maxN, tc.period, tc.snapshots)
		runTwoLevelForward(t, sched, tc.maxN)

		for sweep := 0; sweep < 3; sweep++ {
			actions := drainOneReverseSweep(t, sched)
			assertReverseSweepCoversEveryStep(t, actions, tc.maxN)
			assert.False(t, sched.IsExhausted(), "TwoLevel permits unlimited adjoint sweeps")
		}
	}
}

func TestTwoLevel_RAMBudgetNeverExceeded(t *testing.T) {
	const maxN, period, snapshots = 37, 5, 2
	sched, err := revolve.NewTwoLevel(revolve.TwoLevelParams{
		Period: period, BinomialSnapshots: snapshots, BinomialStorage: revolve.RAM,
	})
	require.NoError(t, err)
	runTwoLevelForward(t, sched, maxN)

	for sweep := 0; sweep < 2; sweep++ {
		resident := map[int]bool{}
		actions := drainOneReverseSweep(t, sched)
		for _, a := range actions {
			switch v := a.(type) {
			case revolve.Forward:
				if v.WriteICS && v.Storage == revolve.RAM {
					resident[v.N0] = true
					require.LessOrEqual(t, len(resident), snapshots,
						"RAM-resident binomial checkpoints must never exceed binomialSnapshots")
				}
			case revolve.Move:
				if v.FromStorage == revolve.RAM {
					delete(resident, v.N)
				}
			}
		}
		assert.Empty(t, resident, "every RAM checkpoint should be consumed by the end of the sweep")
	}
}

func TestTwoLevel_RejectsInvalidParams(t *testing.T) {
	_, err := revolve.NewTwoLevel(revolve.TwoLevelParams{Period: 0, BinomialSnapshots: 1})
	assert.Error(t, err)

	_, err = revolve.NewTwoLevel(revolve.TwoLevelParams{Period: 3, BinomialSnapshots: -1})
	assert.Error(t, err)
}

func TestTwoLevel_DoubleFinalizeSameValueIsIdempotent(t *testing.T) {
	sched, err := revolve.NewTwoLevel(revolve.TwoLevelParams{Period: 4, BinomialSnapshots: 1})
	require.NoError(t, err)
	runTwoLevelForward(t, sched, 12)
	assert.NoError(t, sched.Finalize(12))
	assert.Error(t, sched.Finalize(13))
}

func TestTwoLevel_StatsAreNonNegative(t *testing.T) {
	sched, err := revolve.NewTwoLevel(revolve.TwoLevelParams{Period: 5, BinomialSnapshots: 2})
	require.NoError(t, err)
	runTwoLevelForward(t, sched, 30)
	drainOneReverseSweep(t, sched)
	stats := sched.Stats()
	assert.GreaterOrEqual(t, stats.ForwardSteps, 30)
	assert.GreaterOrEqual(t, stats.WritesDisk, 1)
}
