package search

import "github.com/katalvlaran/pathviz/grid"

// ReconstructPath walks pred backward from target to source, reverses the
// walk and trims both endpoints. A target without a predecessor (and not equal
// to source) yields an empty path.
func ReconstructPath(pred map[grid.Point]grid.Point, source, target grid.Point) []grid.Point {
	if source == target {
		return []grid.Point{}
	}
	if _, ok := pred[target]; !ok {
		return []grid.Point{}
	}

	walk := []grid.Point{target}
	for cur := target; cur != source; {
		prev, ok := pred[cur]
		if !ok {
			return []grid.Point{}
		}
		walk = append(walk, prev)
		cur = prev
	}
	// reverse
	for i, j := 0, len(walk)-1; i < j; i, j = i+1, j-1 {
		walk[i], walk[j] = walk[j], walk[i]
	}

	return walk[1 : len(walk)-1]
}
