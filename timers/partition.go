package timers

import (
	"errors"
	"fmt"
)

// Partition is a named phase of program execution whose time is tracked.
type Partition int

const (
	Optimizer Partition = iota
	Filter
	MeshServices
	FileInputOutput
	PhysicsCompute
	Aggregator

	// TotalNumKeys is the number of partitions. A tree built with the
	// default number of keys uses it as its root key.
	TotalNumKeys
)

// RootLabel is the label of the root bucket, which collects time spent
// outside of any explicit partition.
const RootLabel = "uncategorized"

// ErrUnknownPartition is returned by [LabelOf] for keys that have no label.
var ErrUnknownPartition = errors.New("unknown partition")

// partitionLabels must have exactly one entry per partition.
var partitionLabels = [...]string{
	Optimizer:       "optimizer",
	Filter:          "filter",
	MeshServices:    "mesh_services",
	FileInputOutput: "file_input_output",
	PhysicsCompute:  "physics_compute",
	Aggregator:      "aggregator",
}

// Fails to compile when a partition is added without a label.
var _ [0]struct{} = [int(TotalNumKeys) - len(partitionLabels)]struct{}{}

// LabelOf returns the display label of partition key.
func LabelOf(key int) (string, error) {
	if key < 0 || key >= int(TotalNumKeys) {
		return "", fmt.Errorf("%w: key %d out of range [0, %d)", ErrUnknownPartition, key, int(TotalNumKeys))
	}
	label := partitionLabels[key]
	if label == "" {
		return "", fmt.Errorf("%w: key %d has no label", ErrUnknownPartition, key)
	}
	return label, nil
}

func (p Partition) String() string {
	label, err := LabelOf(int(p))
	if err != nil {
		return fmt.Sprintf("Partition(%d)", int(p))
	}
	return label
}
