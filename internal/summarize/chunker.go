// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"fmt"
	"strings"
)

// Chunk splits text into overlapping word-bounded segments. Each chunk covers
// maxSize words and shares overlap words with its predecessor, so ideas cut
// at a boundary survive in at least one chunk. The last chunk may be shorter.
// Overlap must stay below maxSize or the cursor never advances.
func Chunk(text string, maxSize, overlap int) ([]string, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", maxSize)
	}
	if overlap < 0 || overlap >= maxSize {
		return nil, fmt.Errorf("chunk overlap %d must be in [0, %d)", overlap, maxSize)
	}

	words := strings.Fields(text)
	var chunks []string
	for i := 0; i < len(words); {
		end := i + maxSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if i+maxSize >= len(words) {
			break
		}
		i += maxSize - overlap
	}
	return chunks, nil
}
