package timers

import (
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rodaine/table"
	"golang.org/x/exp/slog"
)

var (
	// gphases (global phases) maps a logical program phase to its tree
	gphases = make(map[string]*TimersTree)
	// gpLock manages access to gphases
	gpLock sync.RWMutex
)

// Phase returns the tree of the program phase called name. If no such tree
// exists it is created with [New], named after the phase; comm and opts are
// ignored when the tree already exists.
//
// The registry is safe for concurrent use, the trees it returns are not.
func Phase(name string, comm Communicator, opts ...Option) *TimersTree {
	gpLock.RLock()
	t, ok := gphases[name]
	gpLock.RUnlock()

	if ok {
		return t
	}

	return newPhase(name, comm, opts...)
}

func newPhase(name string, comm Communicator, opts ...Option) *TimersTree {
	gpLock.Lock()
	defer gpLock.Unlock()

	if t, ok := gphases[name]; ok {
		logger.Warn("attempt to redeclare phase detected",
			slog.String("phase", name))
		return t
	}

	opts = append([]Option{WithName(name)}, opts...)
	t := New(comm, opts...)
	gphases[name] = t

	return t
}

// Phases returns the names of the registered phases in ascending order.
func Phases() []string {
	gpLock.RLock()
	defer gpLock.RUnlock()

	names := make([]string, 0, len(gphases))
	for name := range gphases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResetPhases forgets every registered phase.
func ResetPhases() {
	gpLock.Lock()
	defer gpLock.Unlock()

	gphases = make(map[string]*TimersTree)
}

// PrintPhases prints a summary of the reportable phases of this process
// followed by the results of each phase, in name order. It returns true if
// every registered phase printed (see [TimersTree.PrintResults]).
func PrintPhases() bool {
	gpLock.RLock()
	defer gpLock.RUnlock()

	names := make([]string, 0, len(gphases))
	for name := range gphases {
		names = append(names, name)
	}
	sort.Strings(names)

	headerFmt := color.New(color.FgWhite, color.Underline).SprintfFunc()

	tbl := table.New(
		"phase",
		"total seconds",
		"partitions",
	)
	tbl.WithHeaderFormatter(headerFmt)
	tbl.WithWriter(output)

	summarized := 0
	for _, name := range names {
		t := gphases[name]
		if !ShouldEmit(t.Rank()) {
			continue
		}
		r, ok := t.Report()
		if !ok {
			continue
		}
		tbl.AddRow(name, humanize.FtoaWithDigits(r.Total, 6), len(r.Rows))
		summarized++
	}
	if summarized > 0 {
		color.New(color.FgWhite).Add(color.Bold).Fprintf(output, "\nPhases:\n")
		tbl.Print()
	}

	all := true
	for _, name := range names {
		if !gphases[name].PrintResults() {
			all = false
		}
	}
	return all
}
