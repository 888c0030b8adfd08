package matsim

// read.go - Reader for pre-built network files. Scenarios of the
// "network" kind reuse an existing network.xml (e.g. exported from OSM)
// instead of generating one; only nodes and links are extracted.

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
)

type xmlNetwork struct {
	Name  string `xml:"name,attr"`
	Nodes []struct {
		ID string `xml:"id,attr"`
		X  string `xml:"x,attr"`
		Y  string `xml:"y,attr"`
	} `xml:"nodes>node"`
	Links []struct {
		ID        string `xml:"id,attr"`
		From      string `xml:"from,attr"`
		To        string `xml:"to,attr"`
		Length    string `xml:"length,attr"`
		Freespeed string `xml:"freespeed,attr"`
		Capacity  string `xml:"capacity,attr"`
		PermLanes string `xml:"permlanes,attr"`
	} `xml:"links>link"`
}

// ReadNetwork parses a MATSim network file.
func ReadNetwork(r io.Reader) (*Network, error) {
	dec := xml.NewDecoder(r)

	var doc xmlNetwork
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse network: %w", err)
	}

	n := &Network{Name: doc.Name}
	for _, node := range doc.Nodes {
		x, err := parseCoord(node.X, "node", node.ID, "x")
		if err != nil {
			return nil, err
		}
		y, err := parseCoord(node.Y, "node", node.ID, "y")
		if err != nil {
			return nil, err
		}
		n.Nodes = append(n.Nodes, Node{ID: node.ID, X: x, Y: y})
	}
	for _, link := range doc.Links {
		length, err := parseCoord(link.Length, "link", link.ID, "length")
		if err != nil {
			return nil, err
		}
		speed, err := parseCoord(link.Freespeed, "link", link.ID, "freespeed")
		if err != nil {
			return nil, err
		}
		capacity, err := parseCoord(link.Capacity, "link", link.ID, "capacity")
		if err != nil {
			return nil, err
		}
		lanes := 1.0
		if link.PermLanes != "" {
			lanes, err = parseCoord(link.PermLanes, "link", link.ID, "permlanes")
			if err != nil {
				return nil, err
			}
		}
		n.Links = append(n.Links, Link{
			ID:        link.ID,
			From:      link.From,
			To:        link.To,
			Length:    length,
			Freespeed: speed,
			Capacity:  capacity,
			PermLanes: lanes,
		})
	}
	return n, nil
}

// ReadNetworkFile parses a MATSim network file from disk.
func ReadNetworkFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open network file: %w", err)
	}
	defer func() { _ = f.Close() }()

	n, err := ReadNetwork(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func parseCoord(s, elem, id, attr string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: invalid %s attribute %q", elem, id, attr, s)
	}
	return v, nil
}
