// # internal/engine/graph/detect.go
package graph

// DetectCycles returns the dependency cycles reachable through the given
// kinds, each listed from the package where the walk first entered it.
// Cargo permits cycles through dev-dependencies, so callers usually only
// treat normal and build cycles as suspicious.
func (m *Manifest) DetectCycles(kinds ...DependencyKind) [][]string {
	if len(kinds) == 0 {
		kinds = AllKinds
	}

	var cycles [][]string
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	for _, p := range m.Packages {
		if !visited[p.ID] {
			m.findCycles(p.ID, kinds, visited, onStack, []string{}, &cycles)
		}
	}
	return cycles
}

func (m *Manifest) findCycles(curr string, kinds []DependencyKind, visited, onStack map[string]bool, path []string, cycles *[][]string) {
	visited[curr] = true
	onStack[curr] = true
	path = append(path, curr)

	pkg, _ := m.Package(curr)
	for _, kind := range kinds {
		for _, next := range pkg.Deps(kind) {
			if onStack[next] {
				cycleStart := -1
				for i, id := range path {
					if id == next {
						cycleStart = i
						break
					}
				}
				if cycleStart != -1 {
					cycle := make([]string, len(path)-cycleStart)
					copy(cycle, path[cycleStart:])
					*cycles = append(*cycles, cycle)
				}
			} else if !visited[next] {
				m.findCycles(next, kinds, visited, onStack, path, cycles)
			}
		}
	}

	onStack[curr] = false
}
