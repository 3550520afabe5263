package timers

import (
	"os"
	"strconv"

	"fortio.org/safecast"
	"golang.org/x/exp/slog"
)

// Communicator identifies the rank of the calling process among the
// processes of a parallel job. It is only used to gate printing.
type Communicator interface {
	Rank() int
}

// FixedRank is a [Communicator] with a fixed rank.
type FixedRank int

func (r FixedRank) Rank() int {
	return int(r)
}

// rankEnvVars are checked in order by [WorldFromEnv].
var rankEnvVars = []string{
	"OMPI_COMM_WORLD_RANK", // Open MPI
	"PMI_RANK",             // MPICH, Intel MPI
	"PMIX_RANK",
	"SLURM_PROCID",
}

// WorldFromEnv returns the rank of this process within the job, as published
// by the launcher in the environment. A process started without a launcher is
// rank 0. A malformed rank yields -1, so the process never prints.
func WorldFromEnv() FixedRank {
	for _, name := range rankEnvVars {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		return parseRank(name, v)
	}
	logger.Debug("no launcher rank in environment, assuming rank 0")
	return 0
}

func parseRank(name, v string) FixedRank {
	u, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		logger.Error("invalid rank in environment",
			slog.String("variable", name), slog.String("value", v))
		return -1
	}
	r, err := safecast.Conv[int](u)
	if err != nil {
		logger.Error("rank does not fit in an int",
			slog.String("variable", name), slog.String("value", v))
		return -1
	}
	return FixedRank(r)
}

// ShouldEmit reports whether a process of the given rank prints reports.
func ShouldEmit(rank int) bool {
	return rank == 0
}
