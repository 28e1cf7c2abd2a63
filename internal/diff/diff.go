package diff

import "strings"

// Tag classifies one line of an edit script
type Tag int

const (
	Equal Tag = iota
	Delete
	Insert
)

func (t Tag) String() string {
	switch t {
	case Equal:
		return "equal"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// Sign is the character shown in the sign column
func (t Tag) Sign() string {
	switch t {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}

// Edit is one line of an edit script. Old and New are 0-based line indexes
// into the two inputs, -1 when the line has no counterpart on that side.
// Line keeps its terminator.
type Edit struct {
	Tag  Tag
	Old  int
	New  int
	Line string
}

// SplitLines splits s after every "\n", keeping the terminators. The last
// line may be unterminated. An empty string has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(s, "\n")+1)
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// Lines computes a minimal line-level edit script turning a into b.
//
// When two alignments are equally short, the side whose current line sorts
// first is consumed first, so Lines(b, a) is Lines(a, b) with every Insert
// and Delete swapped.
func Lines(a, b string) []Edit {
	return lineEdits(SplitLines(a), SplitLines(b), blockCells)
}

// blockCells bounds the LCS table built in one piece. Larger problems are
// split by rows and only one boundary row per split level is kept, so memory
// grows with the width of the input rather than its area.
const blockCells = 1 << 20

func lineEdits(a, b []string, maxCells int) []Edit {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	edits := make([]Edit, 0, len(a)+len(b)-prefix-suffix)
	for i := 0; i < prefix; i++ {
		edits = append(edits, Edit{Tag: Equal, Old: i, New: i, Line: a[i]})
	}
	edits = appendLCS(edits, a[prefix:len(a)-suffix], b[prefix:len(b)-suffix], prefix, prefix, maxCells)
	for k := suffix; k > 0; k-- {
		i, j := len(a)-k, len(b)-k
		edits = append(edits, Edit{Tag: Equal, Old: i, New: j, Line: a[i]})
	}
	return edits
}

// appendLCS aligns a and b along a longest common subsequence. offA and offB
// are the positions of a[0] and b[0] in the full inputs.
func appendLCS(edits []Edit, a, b []string, offA, offB, maxCells int) []Edit {
	n, m := len(a), len(b)
	if n == 0 {
		for j := range b {
			edits = append(edits, Edit{Tag: Insert, Old: -1, New: offB + j, Line: b[j]})
		}
		return edits
	}
	if m == 0 {
		for i := range a {
			edits = append(edits, Edit{Tag: Delete, Old: offA + i, New: -1, Line: a[i]})
		}
		return edits
	}

	// Intern lines so the table fill compares ints
	ids := make(map[string]int32, n+m)
	intern := func(lines []string) []int32 {
		out := make([]int32, len(lines))
		for i, l := range lines {
			id, ok := ids[l]
			if !ok {
				id = int32(len(ids))
				ids[l] = id
			}
			out[i] = id
		}
		return out
	}

	al := &aligner{
		a: a, b: b,
		ia: intern(a), ib: intern(b),
		offA: offA, offB: offB,
		maxCells: maxCells,
		edits:    edits,
	}
	j := al.trace(0, n, 0, make([]int32, m+1), 0)
	for ; j < m; j++ {
		al.insert(j)
	}
	return al.edits
}

// aligner walks the LCS path of a and b. L(i, j) below is the LCS length of
// a[i:] and b[j:]. From (i, j) the path takes a match when the lines are
// equal and otherwise steps towards the larger of L(i+1, j) and L(i, j+1),
// breaking ties with takeDelete.
type aligner struct {
	a, b       []string
	ia, ib     []int32
	offA, offB int
	maxCells   int
	edits      []Edit

	block   []int32    // reused table for one block of rows
	scratch [2][]int32 // reused rows for boundary computation
	levels  [][]int32  // boundary row per split depth
}

// trace appends the path from (lo, c) down to row hi and returns the column
// where it reaches row hi. bottom holds L(hi, j) for j >= c.
func (al *aligner) trace(lo, hi, c int, bottom []int32, depth int) int {
	m := len(al.b)
	if c == m {
		for i := lo; i < hi; i++ {
			al.delete(i)
		}
		return m
	}

	rows := hi - lo
	if rows == 1 || rows*(m-c+1) <= al.maxCells {
		return al.traceBlock(lo, hi, c, bottom)
	}

	mid := lo + rows/2
	row := al.level(depth)
	al.rowAt(mid, hi, c, bottom, row)
	j := al.trace(lo, mid, c, row, depth+1)
	return al.trace(mid, hi, j, bottom, depth+1)
}

// traceBlock fills the table for rows [lo, hi) and columns [c, m] and walks it
func (al *aligner) traceBlock(lo, hi, c int, bottom []int32) int {
	m := len(al.b)
	rows, width := hi-lo, m-c+1
	need := (rows + 1) * width
	if cap(al.block) < need {
		al.block = make([]int32, need)
	}
	table := al.block[:need]

	copy(table[rows*width:], bottom[c:])
	for r := rows - 1; r >= 0; r-- {
		id := al.ia[lo+r]
		cur, next := table[r*width:(r+1)*width], table[(r+1)*width:(r+2)*width]
		cur[width-1] = 0
		for k := width - 2; k >= 0; k-- {
			switch {
			case id == al.ib[c+k]:
				cur[k] = next[k+1] + 1
			case next[k] >= cur[k+1]:
				cur[k] = next[k]
			default:
				cur[k] = cur[k+1]
			}
		}
	}

	r, k := 0, 0
	for r < rows && k < width-1 {
		i, j := lo+r, c+k
		switch {
		case al.ia[i] == al.ib[j]:
			al.equal(i, j)
			r++
			k++
		case takeDelete(table[(r+1)*width+k], table[r*width+k+1], al.a[i], al.b[j]):
			al.delete(i)
			r++
		default:
			al.insert(j)
			k++
		}
	}
	for ; r < rows; r++ {
		al.delete(lo + r)
	}
	return c + k
}

// rowAt computes L(row, j) for j >= c into dst, starting from bottom at row hi
func (al *aligner) rowAt(row, hi, c int, bottom, dst []int32) {
	m := len(al.b)
	for i := range al.scratch {
		if len(al.scratch[i]) < m+1 {
			al.scratch[i] = make([]int32, m+1)
		}
	}
	next, cur := al.scratch[0], al.scratch[1]
	copy(next[c:], bottom[c:])

	for i := hi - 1; i >= row; i-- {
		id := al.ia[i]
		cur[m] = 0
		for j := m - 1; j >= c; j-- {
			switch {
			case id == al.ib[j]:
				cur[j] = next[j+1] + 1
			case next[j] >= cur[j+1]:
				cur[j] = next[j]
			default:
				cur[j] = cur[j+1]
			}
		}
		next, cur = cur, next
	}
	copy(dst[c:], next[c:])
}

func (al *aligner) level(depth int) []int32 {
	for len(al.levels) <= depth {
		al.levels = append(al.levels, make([]int32, len(al.b)+1))
	}
	return al.levels[depth]
}

func (al *aligner) equal(i, j int) {
	al.edits = append(al.edits, Edit{Tag: Equal, Old: al.offA + i, New: al.offB + j, Line: al.a[i]})
}

func (al *aligner) delete(i int) {
	al.edits = append(al.edits, Edit{Tag: Delete, Old: al.offA + i, New: -1, Line: al.a[i]})
}

func (al *aligner) insert(j int) {
	al.edits = append(al.edits, Edit{Tag: Insert, Old: -1, New: al.offB + j, Line: al.b[j]})
}

func takeDelete(afterDelete, afterInsert int32, lineA, lineB string) bool {
	if afterDelete != afterInsert {
		return afterDelete > afterInsert
	}
	return lineA < lineB
}

// HasChanges reports whether the script contains any Insert or Delete
func HasChanges(edits []Edit) bool {
	for _, e := range edits {
		if e.Tag != Equal {
			return true
		}
	}
	return false
}
