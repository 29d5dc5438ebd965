package reconcile

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slicePositions replays the ordering rules on a plain slice of new indices:
// inserts and moves land directly after the placed item with the greatest
// smaller new index. It returns the insert and move edits buildScript must
// produce for the same matching.
func slicePositions(oldLen int, newToOld []int, o Options) []Edit[int] {
	oldToNew := make([]int, oldLen)
	for i := range oldToNew {
		oldToNew[i] = -1
	}
	for j, i := range newToOld {
		if i >= 0 {
			oldToNew[i] = j
		}
	}
	var survivors []int
	for _, j := range oldToNew {
		if j >= 0 {
			survivors = append(survivors, j)
		}
	}
	placed := make([]bool, len(newToOld))
	for _, k := range longestIncreasing(survivors) {
		placed[survivors[k]] = true
	}
	paired := make([]bool, len(newToOld))
	for j, i := range newToOld {
		if i < 0 {
			continue
		}
		if !o.DetectMoves && !placed[j] {
			oldToNew[i] = -1
			continue
		}
		paired[j] = true
	}

	var cur []int
	for _, j := range oldToNew {
		if j >= 0 {
			cur = append(cur, j)
		}
	}

	after := func(j int) int {
		pos := 0
		for p, v := range cur {
			if placed[v] && v < j {
				pos = p + 1
			}
		}
		return pos
	}
	insert := func(pos, v int) {
		cur = append(cur, 0)
		copy(cur[pos+1:], cur[pos:])
		cur[pos] = v
	}

	var edits []Edit[int]
	for j := range newToOld {
		if paired[j] {
			continue
		}
		pos := after(j)
		insert(pos, j)
		placed[j] = true
		edits = append(edits, Edit[int]{Op: OpInsert, Position: pos})
	}
	for j := range newToOld {
		if placed[j] {
			continue
		}
		from := 0
		for p, v := range cur {
			if v == j {
				from = p
			}
		}
		cur = append(cur[:from], cur[from+1:]...)
		to := after(j)
		insert(to, j)
		placed[j] = true
		edits = append(edits, Edit[int]{Op: OpMove, Position: from, ToPosition: to})
	}
	return edits
}

// randomLetters draws n keys from a small alphabet so duplicates are common.
func randomLetters(rng *rand.Rand, n int) []testItem {
	out := make([]testItem, rng.Intn(n+1))
	for i := range out {
		out[i] = testItem{Key: string(rune('a' + rng.Intn(6)))}
	}
	return out
}

func TestBuildScript_PositionsMatchSliceReplay(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 500; round++ {
		old, new := randomLetters(rng, 14), randomLetters(rng, 14)
		newToOld := matchPairs(old, new, byKey, false)

		for _, detect := range []bool{true, false} {
			o := Options{DetectMoves: detect}
			script := buildScript(old, new, newToOld, byKey, o)

			var got []Edit[int]
			for _, e := range script.Edits {
				switch e.Op {
				case OpInsert:
					got = append(got, Edit[int]{Op: OpInsert, Position: e.Position})
				case OpMove:
					got = append(got, Edit[int]{Op: OpMove, Position: e.Position, ToPosition: e.ToPosition})
				}
			}
			want := slicePositions(len(old), newToOld, o)
			assert.Equal(t, want, got, "round %d detect=%v old=%v new=%v", round, detect, old, new)

			replayed, err := Apply(old, script)
			require.NoError(t, err)
			if len(new) == 0 {
				assert.Empty(t, replayed)
			} else {
				assert.Equal(t, new, replayed, "round %d detect=%v", round, detect)
			}
		}
	}
}

func sequence(n int) []testItem {
	out := make([]testItem, n)
	for i := range out {
		out[i] = testItem{Key: fmt.Sprintf("k%d", i)}
	}
	return out
}

func reversed(s []testItem) []testItem {
	out := make([]testItem, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func TestCompute_LargeInputs(t *testing.T) {
	if testing.Short() {
		t.Skip("large inputs")
	}

	t.Run("append to empty", func(t *testing.T) {
		new := sequence(200_000)
		script := ComputeKeyed(nil, new, keyOf, sameVer)

		require.Len(t, script.Edits, len(new))
		for j, e := range script.Edits {
			if e.Op != OpInsert || e.Position != j {
				t.Fatalf("edit %d = %+v, want insert at %d", j, e, j)
			}
		}

		rec := NewRecorder(0)
		Dispatch(rec, script)
		assert.Equal(t, len(new), rec.Len())
	})

	t.Run("reverse", func(t *testing.T) {
		const n = 100_000
		old := sequence(n)
		script := ComputeKeyed(old, reversed(old), keyOf, sameVer)

		assert.Equal(t, 1, script.Summary.Stable)
		require.Equal(t, n-1, script.Summary.Moves)
		for k, e := range script.Edits {
			want := Edit[testItem]{Op: OpMove, Position: n - 2 - k, ToPosition: n - 1}
			if e != want {
				t.Fatalf("edit %d = %+v, want %+v", k, e, want)
			}
		}

		rec := NewRecorder(n)
		Dispatch(rec, script)
		assert.Equal(t, n, rec.Len())
	})
}

func BenchmarkComputeKeyed(b *testing.B) {
	old := sequence(50_000)
	rng := rand.New(rand.NewSource(1))
	shuffled := append([]testItem{}, old...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	cases := []struct {
		name     string
		old, new []testItem
	}{
		{"append", nil, old},
		{"reverse", old, reversed(old)},
		{"shuffle", old, shuffled},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ComputeKeyed(c.old, c.new, keyOf, sameVer)
			}
		})
	}
}
