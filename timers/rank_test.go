package timers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearRankEnv(t *testing.T) {
	for _, name := range rankEnvVars {
		if v, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, v) })
			os.Unsetenv(name)
		}
	}
}

func Test_WorldFromEnvDefault(t *testing.T) {
	clearRankEnv(t)

	assert.Equal(t, FixedRank(0), WorldFromEnv())
}

func Test_WorldFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  FixedRank
	}{
		{"OMPI_COMM_WORLD_RANK", "3", 3},
		{"PMI_RANK", "0", 0},
		{"PMIX_RANK", "12", 12},
		{"SLURM_PROCID", "5", 5},
		{"PMI_RANK", "abc", -1},
		{"PMI_RANK", "-2", -1},
		{"PMI_RANK", "18446744073709551615", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			clearRankEnv(t)
			t.Setenv(tt.name, tt.value)

			assert.Equal(t, tt.want, WorldFromEnv())
		})
	}
}

func Test_WorldFromEnvOrder(t *testing.T) {
	clearRankEnv(t)
	t.Setenv("SLURM_PROCID", "4")
	t.Setenv("OMPI_COMM_WORLD_RANK", "1")

	assert.Equal(t, 1, WorldFromEnv().Rank())
}

func Test_TreeOnNonZeroRankFromEnv(t *testing.T) {
	clearRankEnv(t)
	t.Setenv("PMI_RANK", "1")

	tree := New(WorldFromEnv())
	assert.True(t, tree.Begin(Filter))
	assert.True(t, tree.EndPartition())
	assert.False(t, tree.PrintResults())
}
