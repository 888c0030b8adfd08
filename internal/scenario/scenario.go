package scenario

// scenario.go - Variant generation. A variant is one complete MATSim
// file set (config/network/facilities/plans) inside a scenario
// directory, distinguished by a filename suffix so several variants can
// share a directory the way the study scenarios do.

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/gridsim-labs/gridsim/internal/matsim"
)

// GridVariant is one generated variant of a chessboard scenario.
type GridVariant struct {
	Seed          int64
	Grid          GridSpec
	Agents        int
	Mixed         bool    // every inner facility offers work and shopping
	WorkRatio     float64 // share of inner facilities that are workplaces when not mixed
	Suffix        string  // appended to generated file names
	LastIteration int
}

// Validate checks the variant parameters.
func (v GridVariant) Validate() error {
	if err := v.Grid.Validate(); err != nil {
		return err
	}
	if v.Agents <= 0 {
		return fmt.Errorf("agent count must be positive, got %d", v.Agents)
	}
	if !v.Mixed && (v.WorkRatio < 0 || v.WorkRatio > 1) {
		return fmt.Errorf("work facility ratio must be within [0, 1], got %v", v.WorkRatio)
	}
	return nil
}

// GenerateGrid writes a grid variant's file set into dir, creating the
// directory if needed. Same seed, same files.
func GenerateGrid(dir string, v GridVariant) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create scenario directory: %w", err)
	}

	rng := rand.New(rand.NewSource(v.Seed))

	files := variantFiles(v.Suffix)
	cfg := matsim.BuildConfig(matsim.ConfigSpec{
		NetworkFile:    files.network,
		FacilitiesFile: files.facilities,
		PlansFile:      files.plans,
		OutputDir:      "./output" + v.Suffix,
		RandomSeed:     int64(rng.Uint64()),
		LastIteration:  v.LastIteration,
	})
	if err := matsim.WriteConfigFile(filepath.Join(dir, files.config), cfg); err != nil {
		return err
	}

	network := v.Grid.BuildNetwork()
	if err := matsim.WriteNetworkFile(filepath.Join(dir, files.network), network); err != nil {
		return err
	}

	facilities := GridFacilities(rng, v.Grid, v.Mixed, v.WorkRatio)
	if err := matsim.WriteFacilitiesFile(filepath.Join(dir, files.facilities), FacilitiesDoc(facilities)); err != nil {
		return err
	}

	plans, err := BuildPlans(rng, facilities, PlanSpec{
		Agents:     v.Agents,
		HomeWindow: GridHomeWindow,
		WorkWindow: GridWorkWindow,
		ShopWindow: GridShopWindow,
		Step:       GridTimeStep,
	})
	if err != nil {
		return err
	}
	return matsim.WritePopulationFile(filepath.Join(dir, files.plans), plans)
}

// NetworkVariant is one generated variant over a pre-built network. The
// network file must already live inside the scenario directory; the
// generated config references it by name.
type NetworkVariant struct {
	Seed          int64
	NetworkFile   string // file name within the scenario directory
	Agents        int
	Mixes         []Mix
	Suffix        string
	LastIteration int
}

// GenerateFromNetwork writes a network variant's facilities, plans, and
// config next to the existing network file.
func GenerateFromNetwork(dir string, v NetworkVariant) error {
	if v.Agents <= 0 {
		return fmt.Errorf("agent count must be positive, got %d", v.Agents)
	}

	networkPath := filepath.Join(dir, v.NetworkFile)
	network, err := matsim.ReadNetworkFile(networkPath)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(v.Seed))

	files := variantFiles(v.Suffix)
	cfg := matsim.BuildConfig(matsim.ConfigSpec{
		NetworkFile:    v.NetworkFile,
		FacilitiesFile: files.facilities,
		PlansFile:      files.plans,
		OutputDir:      "./output" + v.Suffix,
		RandomSeed:     int64(rng.Uint64()),
		LastIteration:  v.LastIteration,
	})
	if err := matsim.WriteConfigFile(filepath.Join(dir, files.config), cfg); err != nil {
		return err
	}

	facilities, err := NodeFacilities(rng, network.Nodes, v.Mixes)
	if err != nil {
		return err
	}
	if err := matsim.WriteFacilitiesFile(filepath.Join(dir, files.facilities), FacilitiesDoc(facilities)); err != nil {
		return err
	}

	plans, err := BuildPlans(rng, facilities, PlanSpec{
		Agents:     v.Agents,
		HomeWindow: NetworkHomeWindow,
		WorkWindow: NetworkWorkWindow,
		ShopWindow: NetworkShopWindow,
		Step:       NetworkTimeStep,
	})
	if err != nil {
		return err
	}
	return matsim.WritePopulationFile(filepath.Join(dir, files.plans), plans)
}

type fileSet struct {
	config     string
	network    string
	facilities string
	plans      string
}

func variantFiles(suffix string) fileSet {
	return fileSet{
		config:     "config" + suffix + ".xml",
		network:    "network" + suffix + ".xml",
		facilities: "facilities" + suffix + ".xml",
		plans:      "plans" + suffix + ".xml",
	}
}
