package revolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/revolve/pkg/revolve"
)

func TestPeriodicDiskRevolve_ProducesWellFormedSchedule(t *testing.T) {
	for _, tc := range []struct{ maxN, ram, period int }{
		{40, 2, 0}, {100, 3, 0}, {40, 2, 10},
	} {
		sched, err := revolve.NewPeriodicDiskRevolve(revolve.PeriodicDiskRevolveParams{
			MaxN: tc.maxN, SnapsInRAM: tc.ram, Period: tc.period,
		})
		require.NoError(t, err)
		actions := drain(t, sched)
		assertWellFormedOfflineSchedule(t, actions, tc.maxN)
		assert.True(t, sched.UsesDiskStorage())
	}
}

func TestPeriodicDiskRevolve_RejectsInvalidParams(t *testing.T) {
	_, err := revolve.NewPeriodicDiskRevolve(revolve.PeriodicDiskRevolveParams{MaxN: 5, SnapsInRAM: 0})
	assert.Error(t, err)
}
