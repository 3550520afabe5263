package timers

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/exp/slog"
)

// DefaultName is the report title of trees built without [WithName].
const DefaultName = "Plato Timers"

// # TimersTree
//
// Attributes elapsed time to partitions entered and left in LIFO order.
// A tree starts with its root partition (key [TimersTree.NumKeys]) already
// entered; [TimersTree.EndPartition] may close the root too, after which the
// tree is exhausted and further ends fail.
//
// Misuse never panics: every operation reports success as a bool.
// A tree is owned by one goroutine and is not safe for concurrent use.
// Its zero value has no meaning, a tree should always be instantiated with [New].
type TimersTree struct {
	name    string
	comm    Communicator
	clock   Clock
	out     io.Writer
	format  Format
	numKeys int
	valid   bool

	stack *frameStack
	acc   *accumulator
}

// Option configures a [TimersTree] built by [New].
type Option func(*TimersTree)

// WithNumKeys sets the number of explicit partitions, which is also the root
// key. The default is [TotalNumKeys]. A tree with more keys than
// [TotalNumKeys] keeps timing but can never print.
func WithNumKeys(n int) Option {
	return func(t *TimersTree) {
		t.numKeys = n
	}
}

// WithClock sets the time source. The default is [WallClock].
func WithClock(c Clock) Option {
	return func(t *TimersTree) {
		t.clock = c
	}
}

// WithOutput sets the writer reports are printed to (see [SetOutput]).
func WithOutput(w io.Writer) Option {
	return func(t *TimersTree) {
		t.out = w
	}
}

// WithFormat sets the report format. The default is [FormatTable].
func WithFormat(f Format) Option {
	return func(t *TimersTree) {
		t.format = f
	}
}

// WithName sets the report title. The default is [DefaultName].
func WithName(name string) Option {
	return func(t *TimersTree) {
		t.name = name
	}
}

// New returns a tree whose root partition has just been entered.
func New(comm Communicator, opts ...Option) *TimersTree {
	t := &TimersTree{
		name:    DefaultName,
		comm:    comm,
		clock:   WallClock{},
		format:  FormatTable,
		numKeys: int(TotalNumKeys),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.comm == nil {
		logger.Error("no communicator given, tree will never print",
			slog.String("tree", t.name))
		t.comm = FixedRank(-1)
	}
	if t.numKeys < 0 {
		logger.Error("negative number of keys, using 0",
			slog.String("tree", t.name), slog.Int("keys", t.numKeys))
		t.numKeys = 0
	}

	t.valid = t.numKeys <= int(TotalNumKeys)
	if !t.valid {
		logger.Warn("more keys than partitions, results will not be printed",
			slog.String("tree", t.name),
			slog.Int("keys", t.numKeys),
			slog.Int("partitions", int(TotalNumKeys)))
	}

	t.stack = newFrameStack()
	t.acc = newAccumulator(t.NumTimers())
	t.BeginPartition(t.numKeys)

	return t
}

// BeginPartition enters partition key, nested in the current top partition.
// It returns false, changing nothing, if key is not in [0, NumTimers()).
func (t *TimersTree) BeginPartition(key int) bool {
	if key < 0 || key >= t.NumTimers() {
		logger.Debug("partition out of range",
			slog.String("tree", t.name),
			slog.Int("key", key),
			slog.Int("timers", t.NumTimers()))
		return false
	}

	t.stack.push(key, t.clock.Now())
	t.acc.enter(key)
	return true
}

// Begin is [TimersTree.BeginPartition] for a named partition.
func (t *TimersTree) Begin(p Partition) bool {
	return t.BeginPartition(int(p))
}

// EndPartition leaves the top partition, adding the time it spent on top of
// the stack to its bucket. Its whole span is charged to the partition below,
// which does not accrue it. It returns false on an exhausted tree.
func (t *TimersTree) EndPartition() bool {
	f, ok := t.stack.pop()
	if !ok {
		logger.Debug("no partition to end",
			slog.String("tree", t.name))
		return false
	}

	now := t.clock.Now()
	t.acc.add(f.Key, f.self(now))
	t.stack.chargeTop(f.span(now))
	return true
}

// Elapsed returns a copy of the accumulated self time per key, in seconds.
// Time of partitions still open is not included.
func (t *TimersTree) Elapsed() []float64 {
	return t.acc.copy().elapsed
}

// Entrances returns a copy of the number of entrances per key.
func (t *TimersTree) Entrances() []uint64 {
	return t.acc.copy().entrances
}

// NumKeys returns the number of explicit partitions, which is the root key.
func (t *TimersTree) NumKeys() int {
	return t.numKeys
}

// NumTimers returns the number of buckets, NumKeys() + 1.
func (t *TimersTree) NumTimers() int {
	return t.numKeys + 1
}

// Depth returns the number of open partitions, root included.
func (t *TimersTree) Depth() int {
	return t.stack.size()
}

// Top returns the innermost open partition.
func (t *TimersTree) Top() (Frame, bool) {
	return t.stack.peek()
}

// Exhausted reports whether every partition, root included, has been closed.
func (t *TimersTree) Exhausted() bool {
	return t.stack.size() == 0
}

// Valid reports whether the tree was built with no more keys than
// [TotalNumKeys]. Only valid trees print.
func (t *TimersTree) Valid() bool {
	return t.valid
}

// Name returns the report title.
func (t *TimersTree) Name() string {
	return t.name
}

// Rank returns the rank of the process owning the tree.
func (t *TimersTree) Rank() int {
	return t.comm.Rank()
}

func (t *TimersTree) String() string {
	b := bytes.NewBufferString("")

	b.WriteString(fmt.Sprintf("[TimersTree %s]\n", t.name))
	b.WriteString(fmt.Sprintf("rank: %d\n", t.Rank()))
	b.WriteString(fmt.Sprintf("keys: %d\n", t.numKeys))
	b.WriteString(fmt.Sprintf("valid: %t\n", t.valid))
	b.WriteString(fmt.Sprintf("depth: %d\n", t.stack.size()))
	b.WriteString(t.acc.String())

	return b.String()
}
