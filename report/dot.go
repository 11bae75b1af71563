package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/shivansh1010/P2P-Crypto-Simulator/sim"
)

// blockGraphNode adapts a registry entry to gonum's graph.Node /
// dot.Node interfaces so the DOT encoder can label it by its (short)
// content hash and height.
type blockGraphNode struct {
	id     int64
	hash   string
	height int
}

func (n blockGraphNode) ID() int64 { return n.id }

func (n blockGraphNode) DOTID() string {
	short := n.hash
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("h%d_%s", n.height, short)
}

// writeDOT renders n's block registry as a parent -> child tree in
// Graphviz DOT, via gonum's graph/encoding/dot — spec.md §6's "rendered
// directed graph of each node's tree... format unconstrained".
func writeDOT(n *sim.Node, dir string) error {
	g := simple.NewDirectedGraph()

	ids := make(map[string]int64, len(n.BlockRegistry))
	hashes := sortedHashes(n)

	var next int64
	for _, h := range hashes {
		b := n.BlockRegistry[h]
		ids[h] = next
		g.AddNode(blockGraphNode{id: next, hash: b.Hash, height: b.Height})
		next++
	}
	for _, h := range hashes {
		b := n.BlockRegistry[h]
		parentID, ok := ids[b.ParentHash]
		if !ok {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(parentID), T: simple.Node(ids[h])})
	}

	data, err := dot.Marshal(g, fmt.Sprintf("node_%d", n.ID), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fmt.Sprintf("node_%d.dot", n.ID)), data, 0o644)
}
