package codes

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCodes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%c%d", 'A'+rune(i%26), i+1)
	}
	return out
}

func TestBlockCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 1}, {9, 1}, {10, 1}, {11, 2}, {20, 2}, {21, 3}, {100, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BlockCount(tt.n), "n=%d", tt.n)
	}
}

func TestSelect_ElevenCodes(t *testing.T) {
	codes := sampleCodes(11)
	require.Equal(t, "A1", codes[0])
	require.Equal(t, "K11", codes[10])

	blocks := Blocks(codes)
	require.Len(t, blocks, 2)
	assert.Equal(t, codes[:10], blocks[0].Codes)
	assert.Equal(t, 0, blocks[0].Start)
	assert.Equal(t, []string{"K11"}, blocks[1].Codes)
	assert.Equal(t, 10, blocks[1].Start)

	all := Select(codes, All)
	assert.Equal(t, codes, all.Codes)
	assert.Equal(t, 0, all.Start)
	assert.Equal(t, AllCodesLabel, all.Label())
	assert.Equal(t, "Block 2 (Codes 11-11)", blocks[1].Label())
}

func TestBlocks_PartitionCoversStore(t *testing.T) {
	for n := 0; n <= 57; n++ {
		codes := sampleCodes(n)
		blocks := Blocks(codes)
		require.Len(t, blocks, BlockCount(n))

		var joined []string
		for i, b := range blocks {
			if i < len(blocks)-1 {
				assert.Len(t, b.Codes, BlockSize)
			} else {
				assert.LessOrEqual(t, len(b.Codes), BlockSize)
				assert.NotEmpty(t, b.Codes)
			}
			assert.Equal(t, i*BlockSize, b.Start)
			joined = append(joined, b.Codes...)
		}
		if n == 0 {
			assert.Empty(t, joined)
			continue
		}
		assert.Equal(t, codes, joined, "n=%d", n)
	}
}

func TestSelect_OutOfRangeIsEmpty(t *testing.T) {
	assert.True(t, Select(sampleCodes(5), BlockAt(1)).Empty())
	assert.True(t, Select(nil, BlockAt(0)).Empty())
	assert.True(t, Select(nil, All).Empty())
	assert.True(t, Select(sampleCodes(12), BlockAt(-2)).Empty())
	assert.False(t, BlockAt(-2).IsAll())
}

func TestSelect_ReturnsCopy(t *testing.T) {
	codes := sampleCodes(3)
	b := Select(codes, BlockAt(0))
	b.Codes[0] = "changed"
	assert.Equal(t, "A1", codes[0])
}

func TestOptions(t *testing.T) {
	assert.Nil(t, Options(0))
	assert.Equal(t, []Selection{All, 0}, Options(3))
	assert.Equal(t, []Selection{All, 0, 1, 2}, Options(25))
}

func TestSelection_Cycling(t *testing.T) {
	assert.Equal(t, BlockAt(0), All.Next(25))
	assert.Equal(t, BlockAt(2), BlockAt(1).Next(25))
	assert.Equal(t, All, BlockAt(2).Next(25))
	assert.Equal(t, BlockAt(2), All.Prev(25))
	assert.Equal(t, All, BlockAt(0).Prev(25))
	assert.Equal(t, All, BlockAt(0).Next(0))
	assert.Equal(t, BlockAt(0), BlockAt(-5).Next(25))
	assert.Equal(t, BlockAt(2), BlockAt(-5).Prev(25))
}

func TestSelection_Clamp(t *testing.T) {
	assert.Equal(t, BlockAt(1), BlockAt(1).Clamp(11))
	assert.Equal(t, All, BlockAt(1).Clamp(10))
	assert.Equal(t, All, All.Clamp(0))
	assert.Equal(t, All, BlockAt(-3).Clamp(25))
}
