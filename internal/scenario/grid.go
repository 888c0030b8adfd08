package scenario

import (
	"fmt"
	"strconv"

	"github.com/gridsim-labs/gridsim/internal/matsim"
)

// GridSpec describes a chessboard road network: Rows x Cols nodes joined
// by two one-way links per adjacent pair.
type GridSpec struct {
	Rows         int     // nodes per column (= blocks + 1)
	Cols         int     // nodes per row (= blocks + 1)
	BlockSize    float64 // width and height of each block, meters
	SpeedLimit   float64 // link freespeed, meters/second
	LinkCapacity float64 // link capacity, vehicles/hour
}

// Validate checks the grid dimensions and link parameters.
func (s GridSpec) Validate() error {
	if s.Rows < 2 || s.Cols < 2 {
		return fmt.Errorf("grid needs at least 2x2 nodes, got %dx%d", s.Cols, s.Rows)
	}
	if s.BlockSize <= 0 {
		return fmt.Errorf("block size must be positive, got %v", s.BlockSize)
	}
	if s.SpeedLimit <= 0 {
		return fmt.Errorf("speed limit must be positive, got %v", s.SpeedLimit)
	}
	if s.LinkCapacity <= 0 {
		return fmt.Errorf("link capacity must be positive, got %v", s.LinkCapacity)
	}
	return nil
}

// BuildNetwork generates the grid network. Node ids are assigned
// row-major starting at 1; vertical links come before horizontal ones.
func (s GridSpec) BuildNetwork() *matsim.Network {
	n := &matsim.Network{}

	nodeID := func(col, row int) string {
		return strconv.Itoa(row*s.Cols + col + 1)
	}
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Cols; col++ {
			n.Nodes = append(n.Nodes, matsim.Node{
				ID: nodeID(col, row),
				X:  float64(col) * s.BlockSize,
				Y:  float64(row) * s.BlockSize,
			})
		}
	}

	nextLink := 1
	addPair := func(a, b string) {
		n.Links = append(n.Links,
			matsim.Link{
				ID: strconv.Itoa(nextLink), From: a, To: b,
				Length: s.BlockSize, Freespeed: s.SpeedLimit, Capacity: s.LinkCapacity,
			},
			matsim.Link{
				ID: strconv.Itoa(nextLink + 1), From: b, To: a,
				Length: s.BlockSize, Freespeed: s.SpeedLimit, Capacity: s.LinkCapacity,
			},
		)
		nextLink += 2
	}

	// Vertical lanes
	for row := 0; row < s.Rows-1; row++ {
		for col := 0; col < s.Cols; col++ {
			addPair(nodeID(col, row), nodeID(col, row+1))
		}
	}
	// Horizontal lanes
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Cols-1; col++ {
			addPair(nodeID(col, row), nodeID(col+1, row))
		}
	}

	return n
}

// KMHToMS converts a speed limit from km/h to the m/s MATSim links use.
func KMHToMS(kmh float64) float64 {
	return kmh * (1000.0 / 3600.0)
}
