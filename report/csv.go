// Package report writes the per-node output artefacts spec.md §6
// describes: a CSV dump of every block a node has seen, and a Graphviz
// DOT rendering of its block tree (format left unconstrained by the
// spec). Both are external collaborators the core simulator doesn't
// depend on; report consumes *sim.Simulator only after a run completes.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/shivansh1010/P2P-Crypto-Simulator/log"
	"github.com/shivansh1010/P2P-Crypto-Simulator/sim"
)

var reportLog = log.New("pkg", "report")

// WriteAll writes node_<id>.csv and node_<id>.dot for every node in s
// into outputDir, creating it if necessary.
func WriteAll(s *sim.Simulator, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Wrapf(err, "create output dir %s", outputDir)
	}
	for _, n := range s.Nodes() {
		if err := writeCSV(n, outputDir); err != nil {
			return errors.Wrapf(err, "write CSV for node %d", n.ID)
		}
		if err := writeDOT(n, outputDir); err != nil {
			return errors.Wrapf(err, "write DOT for node %d", n.ID)
		}
	}
	reportLog.Info("reports written", "nodes", len(s.Nodes()), "dir", outputDir)
	return nil
}

// sortedHashes returns n's block registry hashes ordered by (height,
// hash), giving every report a stable, reproducible row order.
func sortedHashes(n *sim.Node) []string {
	hashes := make([]string, 0, len(n.BlockRegistry))
	for h := range n.BlockRegistry {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool {
		bi, bj := n.BlockRegistry[hashes[i]], n.BlockRegistry[hashes[j]]
		if bi.Height != bj.Height {
			return bi.Height < bj.Height
		}
		return hashes[i] < hashes[j]
	})
	return hashes
}

// writeCSV implements spec.md §6's node_<id>.csv format exactly:
// header "block_hash,height,mine_time,included_transactions,prev_hash",
// one row per block in the node's block registry.
func writeCSV(n *sim.Node, dir string) error {
	path := filepath.Join(dir, fmt.Sprintf("node_%d.csv", n.ID))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"block_hash", "height", "mine_time", "included_transactions", "prev_hash"}); err != nil {
		return err
	}
	for _, h := range sortedHashes(n) {
		b := n.BlockRegistry[h]
		row := []string{
			b.Hash,
			fmt.Sprintf("%d", b.Height),
			fmt.Sprintf("%.6f", b.MineTime),
			fmt.Sprintf("%d", len(b.Txns)),
			b.ParentHash,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
