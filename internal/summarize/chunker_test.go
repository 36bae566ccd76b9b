package summarize

import (
	"fmt"
	"strings"
	"testing"
)

// wordText builds a text of n distinct words: "w0 w1 ... w(n-1)".
func wordText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}

func TestChunkRanges(t *testing.T) {
	// 7000 words at size 3000 / overlap 200 must produce exactly the ranges
	// [0,3000), [2800,5800), [5600,7000).
	chunks, err := Chunk(wordText(7000), 3000, 200)
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}

	wantBounds := [][2]int{{0, 3000}, {2800, 5800}, {5600, 7000}}
	for i, bounds := range wantBounds {
		words := strings.Fields(chunks[i])
		if len(words) != bounds[1]-bounds[0] {
			t.Errorf("chunk[%d]: got %d words, want %d", i, len(words), bounds[1]-bounds[0])
			continue
		}
		if first := fmt.Sprintf("w%d", bounds[0]); words[0] != first {
			t.Errorf("chunk[%d] starts with %q, want %q", i, words[0], first)
		}
		if last := fmt.Sprintf("w%d", bounds[1]-1); words[len(words)-1] != last {
			t.Errorf("chunk[%d] ends with %q, want %q", i, words[len(words)-1], last)
		}
	}
}

func TestChunkCountBound(t *testing.T) {
	tests := []struct {
		words   int
		size    int
		overlap int
	}{
		{7000, 3000, 200},
		{3001, 3000, 200},
		{10000, 3000, 200},
		{5000, 1000, 100},
		{12345, 2000, 500},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dw_%ds_%do", tt.words, tt.size, tt.overlap), func(t *testing.T) {
			chunks, err := Chunk(wordText(tt.words), tt.size, tt.overlap)
			if err != nil {
				t.Fatalf("Chunk: %v", err)
			}
			step := tt.size - tt.overlap
			want := (tt.words - tt.overlap + step - 1) / step
			if len(chunks) != want {
				t.Errorf("got %d chunks, want ceil((%d-%d)/%d) = %d",
					len(chunks), tt.words, tt.overlap, step, want)
			}
		})
	}
}

func TestChunkCoverage(t *testing.T) {
	// The union of all chunks must cover every word; no words dropped at the end.
	const n = 4321
	chunks, err := Chunk(wordText(n), 1000, 150)
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}

	covered := make(map[string]bool)
	for _, c := range chunks {
		for _, w := range strings.Fields(c) {
			covered[w] = true
		}
	}
	for i := 0; i < n; i++ {
		if !covered[fmt.Sprintf("w%d", i)] {
			t.Fatalf("word w%d not covered by any chunk", i)
		}
	}

	last := strings.Fields(chunks[len(chunks)-1])
	if got := last[len(last)-1]; got != fmt.Sprintf("w%d", n-1) {
		t.Errorf("last chunk ends with %q, want w%d", got, n-1)
	}
}

func TestChunkSingleWhenUnderBudget(t *testing.T) {
	text := wordText(500)
	chunks, err := Chunk(text, 3000, 200)
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != text {
		t.Error("single chunk should equal the whole text")
	}
}

func TestChunkInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
		{"negative overlap", 100, -1},
		{"zero size", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Chunk("some text", tt.size, tt.overlap); err == nil {
				t.Errorf("Chunk(size=%d, overlap=%d) should fail", tt.size, tt.overlap)
			}
		})
	}
}
