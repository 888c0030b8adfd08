package matsim

// write.go - XML writers for the MATSim input formats. MATSim validates
// inputs against its DTDs, so every writer emits the XML declaration and
// the matching DOCTYPE line. Output order is deterministic to keep
// generated scenarios reproducible byte for byte.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

	networkDoctype    = `<!DOCTYPE network SYSTEM "http://www.matsim.org/files/dtd/network_v1.dtd">` + "\n"
	facilitiesDoctype = `<!DOCTYPE facilities SYSTEM "http://www.matsim.org/files/dtd/facilities_v1.dtd">` + "\n"
	plansDoctype      = `<!DOCTYPE plans SYSTEM "http://www.matsim.org/files/dtd/plans_v4.dtd">` + "\n"
	configDoctype     = `<!DOCTYPE config SYSTEM "http://www.matsim.org/files/dtd/config_v2.dtd">` + "\n"
)

// fnum formats a float the shortest way that round-trips.
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeAttr escapes the characters XML forbids inside attribute values.
func escapeAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

// WriteNetwork writes a network file (network_v1.dtd).
func WriteNetwork(w io.Writer, n *Network) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(xmlHeader)
	bw.WriteString(networkDoctype)
	if n.Name != "" {
		fmt.Fprintf(bw, "<network name=%q>\n", escapeAttr(n.Name))
	} else {
		bw.WriteString("<network>\n")
	}

	bw.WriteString("<nodes>\n")
	for _, node := range n.Nodes {
		fmt.Fprintf(bw, "<node id=%q x=%q y=%q />\n",
			escapeAttr(node.ID), fnum(node.X), fnum(node.Y))
	}
	bw.WriteString("</nodes>\n")

	// Link capacities are vehicles per capperiod.
	bw.WriteString("<links capperiod=\"01:00:00\">\n")
	for _, link := range n.Links {
		fmt.Fprintf(bw, "<link id=%q from=%q to=%q length=%q freespeed=%q capacity=%q permlanes=%q oneway=\"1\" />\n",
			escapeAttr(link.ID), escapeAttr(link.From), escapeAttr(link.To),
			fnum(link.Length), fnum(link.Freespeed), fnum(link.Capacity),
			fnum(permLanes(link)))
	}
	bw.WriteString("</links>\n")
	bw.WriteString("</network>\n")
	return bw.Flush()
}

func permLanes(l Link) float64 {
	if l.PermLanes <= 0 {
		return 1
	}
	return l.PermLanes
}

// WriteFacilities writes a facilities file (facilities_v1.dtd).
func WriteFacilities(w io.Writer, f *Facilities) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(xmlHeader)
	bw.WriteString(facilitiesDoctype)
	if f.Name != "" {
		fmt.Fprintf(bw, "<facilities name=%q>\n", escapeAttr(f.Name))
	} else {
		bw.WriteString("<facilities>\n")
	}

	for _, fac := range f.Facilities {
		fmt.Fprintf(bw, "<facility id=%q x=%q y=%q>\n",
			escapeAttr(fac.ID), fnum(fac.X), fnum(fac.Y))
		for _, act := range fac.Activities {
			fmt.Fprintf(bw, "\t<activity type=%q />\n", escapeAttr(act))
		}
		bw.WriteString("</facility>\n")
	}
	bw.WriteString("</facilities>\n")
	return bw.Flush()
}

// WritePopulation writes a plans file (plans_v4.dtd).
func WritePopulation(w io.Writer, p *Population) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(xmlHeader)
	bw.WriteString(plansDoctype)
	if p.Name != "" {
		fmt.Fprintf(bw, "<plans name=%q>\n", escapeAttr(p.Name))
	} else {
		bw.WriteString("<plans>\n")
	}

	for _, person := range p.Persons {
		fmt.Fprintf(bw, "<person id=%q>\n", escapeAttr(person.ID))
		selected := "no"
		if person.Plan.Selected {
			selected = "yes"
		}
		fmt.Fprintf(bw, "\t<plan selected=%q>\n", selected)
		mode := person.Plan.Mode
		if mode == "" {
			mode = "car"
		}
		for i, act := range person.Plan.Activities {
			if i > 0 {
				fmt.Fprintf(bw, "\t\t<leg mode=%q />\n", escapeAttr(mode))
			}
			if act.EndTime != "" {
				fmt.Fprintf(bw, "\t\t<act type=%q x=%q y=%q end_time=%q />\n",
					escapeAttr(act.Type), fnum(act.X), fnum(act.Y), escapeAttr(act.EndTime))
			} else {
				fmt.Fprintf(bw, "\t\t<act type=%q x=%q y=%q />\n",
					escapeAttr(act.Type), fnum(act.X), fnum(act.Y))
			}
		}
		bw.WriteString("\t</plan>\n")
		bw.WriteString("</person>\n")
	}
	bw.WriteString("</plans>\n")
	return bw.Flush()
}

// WriteConfig writes a master config file (config_v2.dtd).
func WriteConfig(w io.Writer, c *Config) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(xmlHeader)
	bw.WriteString(configDoctype)
	bw.WriteString("<config>\n")
	for _, m := range c.Modules {
		fmt.Fprintf(bw, "\t<module name=%q>\n", escapeAttr(m.Name))
		writeParams(bw, m.Params, 2)
		writeParamSets(bw, m.Sets, 2)
		bw.WriteString("\t</module>\n")
	}
	bw.WriteString("</config>\n")
	return bw.Flush()
}

func writeParams(bw *bufio.Writer, params []Param, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, p := range params {
		fmt.Fprintf(bw, "%s<param name=%q value=%q />\n",
			indent, escapeAttr(p.Name), escapeAttr(p.Value))
	}
}

func writeParamSets(bw *bufio.Writer, sets []ParamSet, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, s := range sets {
		fmt.Fprintf(bw, "%s<parameterset type=%q>\n", indent, escapeAttr(s.Type))
		writeParams(bw, s.Params, depth+1)
		writeParamSets(bw, s.Sets, depth+1)
		fmt.Fprintf(bw, "%s</parameterset>\n", indent)
	}
}

// WriteNetworkFile, WriteFacilitiesFile, WritePopulationFile, and
// WriteConfigFile write the respective documents to a path, creating or
// truncating the file.

func WriteNetworkFile(path string, n *Network) error {
	return writeFile(path, func(w io.Writer) error { return WriteNetwork(w, n) })
}

func WriteFacilitiesFile(path string, f *Facilities) error {
	return writeFile(path, func(w io.Writer) error { return WriteFacilities(w, f) })
}

func WritePopulationFile(path string, p *Population) error {
	return writeFile(path, func(w io.Writer) error { return WritePopulation(w, p) })
}

func WriteConfigFile(path string, c *Config) error {
	return writeFile(path, func(w io.Writer) error { return WriteConfig(w, c) })
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
