package sim

// BuildTopology constructs a random connected undirected simple graph
// over n nodes where every node's degree lies in [minNeighbors,
// maxNeighbors], retrying from scratch on failure, per spec.md §4.8
// step 1. It returns, for each node id, its neighbors in ascending
// order (ascending order makes every downstream event-scheduling loop
// deterministic for a fixed seed, spec.md §5).
func BuildTopology(rng *Rng, n, minNeighbors, maxNeighbors int) [][]NodeID {
	for {
		adj, ok := attemptTopology(rng, n, minNeighbors, maxNeighbors)
		if ok && isConnected(adj) {
			return adj
		}
	}
}

func attemptTopology(rng *Rng, n, minNeighbors, maxNeighbors int) ([][]NodeID, bool) {
	target := make([]int, n)
	for i := range target {
		span := maxNeighbors - minNeighbors
		if span < 0 {
			span = 0
		}
		target[i] = minNeighbors
		if span > 0 {
			target[i] += rng.Intn(span + 1)
		}
	}

	adjSet := make([]map[NodeID]struct{}, n)
	for i := range adjSet {
		adjSet[i] = make(map[NodeID]struct{})
	}
	degree := make([]int, n)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for _, i := range order {
		for degree[i] < target[i] {
			var candidates []NodeID
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				if _, connected := adjSet[i][NodeID(j)]; connected {
					continue
				}
				if degree[j] >= target[j] {
					continue
				}
				candidates = append(candidates, NodeID(j))
			}
			if len(candidates) == 0 {
				break
			}
			pick := candidates[rng.Intn(len(candidates))]
			adjSet[i][pick] = struct{}{}
			adjSet[pick][NodeID(i)] = struct{}{}
			degree[i]++
			degree[int(pick)]++
		}
	}

	for i := 0; i < n; i++ {
		if degree[i] < minNeighbors || degree[i] > maxNeighbors {
			return nil, false
		}
	}

	adj := make([][]NodeID, n)
	for i := 0; i < n; i++ {
		for nb := range adjSet[i] {
			adj[i] = append(adj[i], nb)
		}
		adj[i] = sortNodeIDs(adj[i])
	}
	return adj, true
}

func sortNodeIDs(ids []NodeID) []NodeID {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// isConnected performs a BFS from node 0 over adj, per spec.md §4.8 step 1.
func isConnected(adj [][]NodeID) bool {
	n := len(adj)
	if n == 0 {
		return true
	}
	visited := make([]bool, n)
	queue := []NodeID{0}
	visited[0] = true
	count := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range adj[cur] {
			if !visited[nb] {
				visited[nb] = true
				count++
				queue = append(queue, nb)
			}
		}
	}
	return count == n
}
