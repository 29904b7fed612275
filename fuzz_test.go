//go:build go1.18

package star_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	star "github.com/nefkit/go-star"
)

// shape reduces a tree to its structural outline: the number of blocks
// followed by each block's entry count. Values are not compared because
// serialization normalizes some of them (multiline trailing newlines,
// semicolon-led lines), but the outline must survive a round trip.
func shape(doc *star.DataExtent) []int {
	blocks := doc.Blocks()
	counts := make([]int, 0, len(blocks)+1)
	counts = append(counts, len(blocks))
	for _, block := range blocks {
		counts = append(counts, block.Len())
	}
	return counts
}

func FuzzRoundTrip(f *testing.F) {
	// Seed the corpus with valid STAR files from the testdata directory.
	// This gives the fuzzer good starting points for valid syntax.
	seedFiles, err := filepath.Glob("testdata/*.star")
	if err != nil {
		f.Fatalf("failed to find seed files: %v", err)
	}

	for _, file := range seedFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", file, err)
		}
		f.Add(data)
	}

	// Add some simple but important edge cases manually.
	f.Add([]byte("data_a\n_t  1\n"))
	f.Add([]byte("data_a\nloop_\n   _i\n   _j\n   1  2\nstop_\n"))
	f.Add([]byte("data_a\nsave_f\n_x  .\nsave_\n"))
	f.Add([]byte("data_a\n_t\n;\nabc\n;\n"))
	f.Add([]byte("global_\n_a  1\n"))
	f.Add([]byte("data_a\n_q  'x y'\n_r  \"z\"\n"))
	f.Add([]byte("data_a\n_v  ?\n"))

	f.Fuzz(func(t *testing.T, originalData []byte) {
		// 1. Try to parse the fuzzed data.
		doc, err := star.Parse(string(originalData))
		if err != nil {
			// If there's an error, the input was invalid STAR, which is
			// expected. The fuzzer's main job is to find inputs that
			// cause a panic, and the fuzz engine detects those itself.
			return
		}

		// 2. Serialize the tree and parse the result. This can still
		// fail for one family of inputs: block names that only collide
		// once the data_ prefix is added (a leading global_ block next
		// to an explicit data_global_ block). Such inputs must come
		// back as an error, never a panic.
		second, err := star.Parse(doc.String())
		if err != nil {
			return
		}

		// 3. The structural outline must survive the round trip.
		require.Equal(t, shape(doc), shape(second), "structure changed across a round trip")

		// 4. After one cycle all names are normalized, so from here on
		// serializing and reparsing must always succeed and keep the
		// outline fixed.
		third, err := star.Parse(second.String())
		require.NoError(t, err, "reparse failed on normalized output")
		require.Equal(t, shape(second), shape(third), "structure changed after normalization")
	})
}
