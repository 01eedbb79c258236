package testutil

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Bytes returns a pseudo-random byte slice of length n.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(r.rand.Intn(256))
	}
	return buf
}

// Payloads generates num byte slices with lengths in [0, maxLen].
// Zero-length payloads are deliberately included since empty columns
// are a valid segment state.
func (r *RNG) Payloads(num, maxLen int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	payloads := make([][]byte, num)
	for i := range payloads {
		buf := make([]byte, r.rand.Intn(maxLen+1))
		for j := range buf {
			buf[j] = byte(r.rand.Intn(256))
		}
		payloads[i] = buf
	}
	return payloads
}

const nameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789_."

// ColumnNames generates num distinct column names, sorted ascending,
// with lengths in [1, maxLen]. Names never contain a NUL byte, so they
// are valid in column keys and their sort order matches key order.
func (r *RNG) ColumnNames(num, maxLen int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, num)
	names := make([]string, 0, num)
	for len(names) < num {
		buf := make([]byte, 1+r.rand.Intn(maxLen))
		for i := range buf {
			buf[i] = nameAlphabet[r.rand.Intn(len(nameAlphabet))]
		}
		name := string(buf)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// ChunkSizes splits total into pseudo-random positive chunk sizes that
// sum to total. Useful for exercising multi-write column bodies.
func (r *RNG) ChunkSizes(total int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var chunks []int
	for total > 0 {
		n := 1 + r.rand.Intn(total)
		chunks = append(chunks, n)
		total -= n
	}
	return chunks
}

// AscendingRows generates num strictly ascending row IDs starting at
// zero with pseudo-random gaps in [1, maxGap]. Useful for exercising
// sparse presence encodings.
func (r *RNG) AscendingRows(num, maxGap int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]uint32, num)
	var next uint32
	for i := range rows {
		rows[i] = next
		next += uint32(1 + r.rand.Intn(maxGap))
	}
	return rows
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}
