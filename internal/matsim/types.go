// Package matsim models the XML file formats consumed by the external
// MATSim transport simulation engine: networks, facilities, plans, and the
// master config. The engine itself is out of scope; this package only
// produces inputs for it and reads back inputs it was given.
package matsim

// Node is a vertex in a road network.
type Node struct {
	ID string
	X  float64
	Y  float64
}

// Link is a directed road segment between two nodes.
type Link struct {
	ID        string
	From      string
	To        string
	Length    float64 // meters
	Freespeed float64 // meters/second
	Capacity  float64 // vehicles/hour
	PermLanes float64
}

// Network holds the nodes and links of a scenario road network.
type Network struct {
	Name  string
	Nodes []Node
	Links []Link
}

// NodeByID returns the node with the given id, or nil.
func (n *Network) NodeByID(id string) *Node {
	for i := range n.Nodes {
		if n.Nodes[i].ID == id {
			return &n.Nodes[i]
		}
	}
	return nil
}

// Facility is a location agents can perform activities at.
type Facility struct {
	ID         string
	X          float64
	Y          float64
	Activities []string
}

// Facilities is the content of a facilities file.
type Facilities struct {
	Name       string
	Facilities []Facility
}

// Activity is one entry of an agent's daily plan. EndTime is a
// clock string ("07:30:00"); it is empty for the final activity.
type Activity struct {
	Type    string
	X       float64
	Y       float64
	EndTime string
}

// Plan is an agent's daily activity chain. The writer emits a leg with
// the plan's mode between each pair of consecutive activities.
type Plan struct {
	Selected   bool
	Mode       string
	Activities []Activity
}

// Person is one agent in a population file.
type Person struct {
	ID   string
	Plan Plan
}

// Population is the content of a plans file.
type Population struct {
	Name    string
	Persons []Person
}

// Param is a single name/value entry of a config module.
type Param struct {
	Name  string
	Value string
}

// ParamSet is a typed group of params within a config module. Sets may
// nest (e.g. scoringParameters containing activityParams).
type ParamSet struct {
	Type   string
	Params []Param
	Sets   []ParamSet
}

// Module is one named section of a MATSim config file.
type Module struct {
	Name   string
	Params []Param
	Sets   []ParamSet
}

// Config is the content of a MATSim master config file.
type Config struct {
	Modules []Module
}

// Module returns the module with the given name, or nil.
func (c *Config) Module(name string) *Module {
	for i := range c.Modules {
		if c.Modules[i].Name == name {
			return &c.Modules[i]
		}
	}
	return nil
}

// Param returns the value of a named param, or "".
func (m *Module) Param(name string) string {
	for _, p := range m.Params {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}
