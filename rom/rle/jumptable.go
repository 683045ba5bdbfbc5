package rle

// JumpTable holds, for every element position, the run length and the literal
// span length that the greedy encoder would use if it started there.
//
//	Runs[i]  = min(number of equal elements starting at i, limit)
//	Spans[i] = 0 when Runs[i] >= 3, otherwise
//	           min(number of consecutive positions from i with Runs < 3, limit)
//
// Both arrays are filled in one backward pass.
type JumpTable struct {
	Runs  []int
	Spans []int

	opSize int
}

// Table builds the jump table of elems for codec c.
func (c Codec) Table(elems []uint16) JumpTable {
	n := len(elems)
	t := JumpTable{
		Runs:   make([]int, n),
		Spans:  make([]int, n),
		opSize: c.opSize,
	}
	for i := n - 1; i >= 0; i-- {
		t.Runs[i] = 1
		if i+1 < n && elems[i] == elems[i+1] {
			t.Runs[i] = min(t.Runs[i+1]+1, c.limit)
		}
		if t.Runs[i] >= minRun {
			continue
		}
		t.Spans[i] = 1
		if i+1 < n && t.Spans[i+1] > 0 {
			t.Spans[i] = min(t.Spans[i+1]+1, c.limit)
		}
	}
	return t
}

// Walk visits the opcodes the encoder emits, in order. run reports whether the
// opcode is a run; at is the first element covered and n the element count.
func (t JumpTable) Walk(fn func(run bool, at, n int)) {
	for i := 0; i < len(t.Runs); {
		if r := t.Runs[i]; r >= minRun {
			fn(true, i, r)
			i += r
			continue
		}
		s := t.Spans[i]
		fn(false, i, s)
		i += s
	}
}

// Length returns the exact size of the encoded stream, terminator included.
func (t JumpTable) Length() int {
	size := t.opSize
	t.Walk(func(run bool, _, n int) {
		if run {
			size += 2 * t.opSize
			return
		}
		size += (n + 1) * t.opSize
	})
	return size
}
