package timers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EveryPartitionHasALabel(t *testing.T) {
	seen := map[string]Partition{}
	for p := Partition(0); p < TotalNumKeys; p++ {
		label, err := LabelOf(int(p))
		require.NoError(t, err, "partition %d", int(p))
		assert.NotEmpty(t, label)

		other, dup := seen[label]
		assert.False(t, dup, "%s used by %d and %d", label, int(other), int(p))
		seen[label] = p
	}
	assert.NotContains(t, seen, RootLabel)
}

func Test_LabelOf(t *testing.T) {
	label, err := LabelOf(int(MeshServices))
	require.NoError(t, err)
	assert.Equal(t, "mesh_services", label)

	for _, key := range []int{-1, int(TotalNumKeys), int(TotalNumKeys) + 10} {
		_, err := LabelOf(key)
		assert.True(t, errors.Is(err, ErrUnknownPartition), "key %d", key)
	}
}

func Test_PartitionString(t *testing.T) {
	assert.Equal(t, "physics_compute", PhysicsCompute.String())
	assert.Equal(t, "aggregator", Aggregator.String())
	assert.Equal(t, "Partition(6)", TotalNumKeys.String())
}

func Test_RootLabelOnlyForRootKey(t *testing.T) {
	tree := New(FixedRank(0), WithNumKeys(2))

	label, err := tree.labelOf(2)
	require.NoError(t, err)
	assert.Equal(t, RootLabel, label)

	label, err = tree.labelOf(1)
	require.NoError(t, err)
	assert.Equal(t, "filter", label)
}
