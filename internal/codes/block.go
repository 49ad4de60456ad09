package codes

import "fmt"

// BlockSize is the number of codes in a fixed block.
const BlockSize = 10

// AllCodesLabel names the pseudo-block spanning the whole store.
const AllCodesLabel = "All Codes (Complete Export)"

// Selection addresses either the whole store or one fixed block.
// Fixed blocks are 0-based; All precedes block 0.
type Selection int

// All selects every accepted code.
const All Selection = -1

// BlockAt selects the fixed block with the given 0-based index.
func BlockAt(index int) Selection {
	return Selection(index)
}

// IsAll reports whether s is the pseudo-block.
func (s Selection) IsAll() bool {
	return s == All
}

// Block is a read-only view over a contiguous slice of accepted codes.
type Block struct {
	Codes     []string
	Selection Selection
	Start     int
}

// Empty reports whether the block holds no codes.
func (b Block) Empty() bool {
	return len(b.Codes) == 0
}

// Label is the selector text for the block.
func (b Block) Label() string {
	if b.Selection.IsAll() {
		return AllCodesLabel
	}
	if b.Empty() {
		return fmt.Sprintf("Block %d", int(b.Selection)+1)
	}
	return fmt.Sprintf("Block %d (Codes %d-%d)", int(b.Selection)+1, b.Start+1, b.Start+len(b.Codes))
}

// BlockCount returns ceil(n / BlockSize).
func BlockCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + BlockSize - 1) / BlockSize
}

// Select returns the block addressed by sel. An out-of-range index or an
// empty code list yields an empty block.
func Select(codes []string, sel Selection) Block {
	if sel.IsAll() {
		return Block{
			Selection: All,
			Codes:     clone(codes),
		}
	}

	index := int(sel)
	if index < 0 || index >= BlockCount(len(codes)) {
		return Block{Selection: sel}
	}

	start := index * BlockSize
	end := min(start+BlockSize, len(codes))
	return Block{
		Selection: sel,
		Start:     start,
		Codes:     clone(codes[start:end]),
	}
}

// Blocks partitions codes into consecutive fixed blocks.
func Blocks(codes []string) []Block {
	n := BlockCount(len(codes))
	blocks := make([]Block, 0, n)
	for i := 0; i < n; i++ {
		blocks = append(blocks, Select(codes, BlockAt(i)))
	}
	return blocks
}

// Options lists the selectable views for a store of n codes: All first,
// then each fixed block. An empty store has no options.
func Options(n int) []Selection {
	if n <= 0 {
		return nil
	}
	opts := make([]Selection, 0, BlockCount(n)+1)
	opts = append(opts, All)
	for i := 0; i < BlockCount(n); i++ {
		opts = append(opts, BlockAt(i))
	}
	return opts
}

// Next returns the selection after s for a store of n codes, wrapping around.
func (s Selection) Next(n int) Selection {
	return s.step(n, 1)
}

// Prev returns the selection before s for a store of n codes, wrapping around.
func (s Selection) Prev(n int) Selection {
	return s.step(n, -1)
}

func (s Selection) step(n, delta int) Selection {
	opts := Options(n)
	if len(opts) == 0 {
		return All
	}
	if int(s) < int(All) {
		s = All
	}
	pos := 0
	for i, o := range opts {
		if o == s {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(opts)) % len(opts)
	return opts[pos]
}

// Clamp maps s onto a valid selection for a store of n codes.
func (s Selection) Clamp(n int) Selection {
	if s.IsAll() || (s >= 0 && int(s) < BlockCount(n)) {
		return s
	}
	return All
}

func clone(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}
