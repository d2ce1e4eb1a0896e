package huffcodec

// node is an arena element: leaves hold a byte symbol, internal nodes
// hold references (arena indices, never pointers) to their children.
// inTree records that a node has already been consumed as a child by
// some other node, following the teacher's list-and-mark-consumed
// construction rather than a heap.
type node struct {
	freq     uint64
	left     int32 // -1 if absent
	right    int32 // -1 if absent
	symbol   uint64
	seq      uint32 // insertion order, the tie-break for equal frequency
	inTree   bool
	isLeaf   bool
	byteVal  byte
}

const noChild = -1

// buildTree constructs a Huffman tree over freq (indexed by byte
// value) and returns the arena and the index of the root. It assumes
// at least two distinct symbols are present; callers handle the
// zero- and one-symbol cases before calling this.
func buildTree(freq *[256]uint64) (arena []node, root int32) {
	var seq uint32
	list := make([]int32, 0, 256)

	for b := 0; b < 256; b++ {
		if freq[b] == 0 {
			continue
		}
		arena = append(arena, node{
			freq:    freq[b],
			left:    noChild,
			right:   noChild,
			symbol:  uint64(b),
			seq:     seq,
			isLeaf:  true,
			byteVal: byte(b),
		})
		list = append(list, int32(len(arena)-1))
		seq++
	}

	nextInternalSymbol := uint64(256)

	for {
		sortNodeList(arena, list)

		var leftIdx, rightIdx = -1, -1
		for i, idx := range list {
			if !arena[idx].inTree {
				leftIdx = i
				break
			}
		}
		if leftIdx < 0 {
			break
		}
		for i := leftIdx + 1; i < len(list); i++ {
			if !arena[list[i]].inTree {
				rightIdx = i
				break
			}
		}
		if rightIdx < 0 {
			root = list[leftIdx]
			break
		}

		l, r := list[leftIdx], list[rightIdx]
		arena = append(arena, node{
			freq:   arena[l].freq + arena[r].freq,
			left:   l,
			right:  r,
			symbol: nextInternalSymbol,
			seq:    seq,
		})
		nextInternalSymbol++
		seq++
		arena[l].inTree = true
		arena[r].inTree = true
		list = append(list, int32(len(arena)-1))
	}

	return arena, root
}

// sortNodeList places already-consumed (inTree) nodes last, and orders
// the rest by ascending (frequency, insertion sequence) — a total
// order chosen so the result is reproducible across sort
// implementations, per the package's determinism requirement.
func sortNodeList(arena []node, list []int32) {
	less := func(i, j int32) bool {
		a, b := arena[i], arena[j]
		if a.inTree != b.inTree {
			return !a.inTree // non-inTree sorts first
		}
		if a.freq != b.freq {
			return a.freq < b.freq
		}
		return a.seq < b.seq
	}
	insertionSort(list, less)
}

func insertionSort(list []int32, less func(a, b int32) bool) {
	for i := 1; i < len(list); i++ {
		v := list[i]
		j := i - 1
		for j >= 0 && less(v, list[j]) {
			list[j+1] = list[j]
			j--
		}
		list[j+1] = v
	}
}

const maxCodeLen = 58

// codeEntry is a single symbol's assigned Huffman code.
type codeEntry struct {
	code uint64
	len  int
}

// assignCodes walks the tree from root and returns each leaf's code,
// indexed by byte value with present[b] false for absent symbols.
func assignCodes(arena []node, root int32) (codes [256]codeEntry, present [256]bool) {
	if len(arena) == 0 {
		return
	}
	var walk func(idx int32, code uint64, length int)
	walk = func(idx int32, code uint64, length int) {
		n := &arena[idx]
		if n.isLeaf {
			if length > maxCodeLen {
				panic("huffcodec: code length exceeds 58 bits")
			}
			codes[n.byteVal] = codeEntry{code: code, len: length}
			present[n.byteVal] = true
			return
		}
		if n.left != noChild {
			walk(n.left, code, length+1)
		}
		if n.right != noChild {
			walk(n.right, code|(1<<uint(length)), length+1)
		}
	}
	walk(root, 0, 0)
	return
}
