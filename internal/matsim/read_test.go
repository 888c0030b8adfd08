package matsim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNetworkXML = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE network SYSTEM "http://www.matsim.org/files/dtd/network_v1.dtd">
<network name="downtown">
<nodes>
<node id="n1" x="1000.5" y="2000" />
<node id="n2" x="1250.5" y="2000" />
</nodes>
<links capperiod="01:00:00">
<link id="l1" from="n1" to="n2" length="250" freespeed="13.9" capacity="600" permlanes="2" oneway="1" />
<link id="l2" from="n2" to="n1" length="250" freespeed="13.9" capacity="600" oneway="1" />
</links>
</network>
`

func TestReadNetwork(t *testing.T) {
	n, err := ReadNetwork(strings.NewReader(sampleNetworkXML))
	require.NoError(t, err)

	assert.Equal(t, "downtown", n.Name)
	require.Len(t, n.Nodes, 2)
	assert.Equal(t, Node{ID: "n1", X: 1000.5, Y: 2000}, n.Nodes[0])

	require.Len(t, n.Links, 2)
	assert.Equal(t, "n1", n.Links[0].From)
	assert.Equal(t, 600.0, n.Links[0].Capacity)
	assert.Equal(t, 2.0, n.Links[0].PermLanes)
	// permlanes defaults to 1 when absent
	assert.Equal(t, 1.0, n.Links[1].PermLanes)
}

func TestReadNetworkInvalidCoord(t *testing.T) {
	bad := strings.Replace(sampleNetworkXML, `x="1000.5"`, `x="oops"`, 1)
	_, err := ReadNetwork(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x attribute")
}

func TestNodeByID(t *testing.T) {
	n, err := ReadNetwork(strings.NewReader(sampleNetworkXML))
	require.NoError(t, err)

	assert.NotNil(t, n.NodeByID("n2"))
	assert.Nil(t, n.NodeByID("missing"))
}
