package diff

// DefaultContext is the number of unchanged lines kept around a change
const DefaultContext = 3

// Group splits an edit script into hunks. Each hunk keeps at most context
// Equal lines before and after its changes, and a run of more than 2*context
// Equal lines between two changes starts a new hunk. A script without changes
// yields no hunks. Hunks share memory with edits.
func Group(edits []Edit, context int) [][]Edit {
	if context < 0 {
		context = 0
	}

	first := -1
	for i, e := range edits {
		if e.Tag != Equal {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}

	var groups [][]Edit
	start := max(0, first-context)
	i := first
	for i < len(edits) {
		if edits[i].Tag != Equal {
			i++
			continue
		}

		j := i
		for j < len(edits) && edits[j].Tag == Equal {
			j++
		}
		if j == len(edits) {
			return append(groups, edits[start:min(j, i+context)])
		}
		if j-i > 2*context {
			groups = append(groups, edits[start:i+context])
			start = j - context
		}
		i = j
	}
	return append(groups, edits[start:])
}
