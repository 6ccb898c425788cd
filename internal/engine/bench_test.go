package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tisearch/tisearch/internal/types"
)

func BenchmarkMatchReader(b *testing.B) {
	for _, lines := range []int{100, 10_000} {
		b.Run(fmt.Sprintf("lines_%d", lines), func(b *testing.B) {
			content := strings.Repeat("The quick brown fox jumps over the lazy dog\n", lines)
			f := newFolder()
			term := f.lower("LAZY")
			b.SetBytes(int64(len(content)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = matchReader(strings.NewReader(content), "bench.txt", term, f, func(types.Match) {})
			}
		})
	}
}
