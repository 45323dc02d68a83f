package msa

import (
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/msalign/pairwise"
	"github.com/katalvlaran/msalign/prosody"
	"github.com/katalvlaran/msalign/score"
)

// classSep joins class tokens into the deduplication key. An ASCII unit
// separator cannot collide with any printable class symbol.
const classSep = "\x1f"

// Multiple is one multiple-alignment session over a fixed input set.
//
// Construction transliterates every token sequence through the class
// model, derives sonority contours when a sonority model is present,
// and collapses sequences with identical class strings into uniques:
// all alignment work runs over the uniques, and results are broadcast
// back to every original sequence afterwards.
//
// A session is not safe for concurrent use; the internal all-pairs
// fan-out is the only concurrency it owns.
type Multiple struct {
	logger *zap.Logger
	scorer score.Scorer

	tokens  [][]string // original inputs, index = sequence id
	classes [][]string // class transliteration per input
	son     [][]int    // sonority per input, nil without a model

	reps     []int   // unique id -> representative original id
	members  [][]int // unique id -> original ids sharing the class string
	uniqueOf []int   // original id -> unique id

	opts    AlignOptions
	aligned bool
	dist    [][]float64              // unique-pair distance matrix
	selfU   []float64                // unique self-similarity
	pairs   map[[2]int]PairAlignment // unique-pair class rows, key i < j

	alnU      [][]string // class alignment, one row per unique
	alignment [][]string // published token alignment, one row per input
	swaps     [][3]int
}

// Option mutates a session at construction time.
type Option func(*Multiple)

// WithLogger installs a diagnostics logger. The default is zap.NewNop.
func WithLogger(l *zap.Logger) Option {
	return func(m *Multiple) {
		if l != nil {
			m.logger = l
		}
	}
}

// New builds a session from raw token sequences and the two model
// seams. sonModel may be nil, which disables all structural biasing.
func New(tokens [][]string, classModel ClassModel, sonModel SonorityModel, opts ...Option) (*Multiple, error) {
	if len(tokens) == 0 {
		return nil, ErrNoSequences
	}
	if classModel == nil {
		return nil, ErrNilModel
	}

	m := &Multiple{
		logger: zap.NewNop(),
		scorer: classModel.Scorer(),
		tokens: make([][]string, len(tokens)),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.classes = make([][]string, len(tokens))
	if sonModel != nil {
		m.son = make([][]int, len(tokens))
	}
	for i, seq := range tokens {
		m.tokens[i] = append([]string(nil), seq...)

		cls, err := classModel.Classify(seq)
		if err != nil {
			return nil, err
		}
		if len(cls) != len(seq) {
			return nil, ErrModelMismatch
		}
		m.classes[i] = cls

		if sonModel == nil {
			continue
		}
		son, err := sonModel.Sonority(seq)
		if err != nil {
			return nil, err
		}
		if len(son) != len(seq) {
			return nil, ErrModelMismatch
		}
		m.son[i] = son
	}

	m.collapse()
	m.logger.Debug("msa: session constructed",
		zap.Int("sequences", len(m.tokens)),
		zap.Int("uniques", len(m.reps)),
		zap.Bool("sonority", m.son != nil),
	)

	return m, nil
}

// collapse groups sequences by their joined class string so that
// identical class sequences are aligned once and broadcast many times.
// Unique ids follow first-appearance order, keeping every downstream
// scan deterministic.
func (m *Multiple) collapse() {
	seen := make(map[string]int, len(m.classes))
	m.uniqueOf = make([]int, len(m.classes))
	for i, cls := range m.classes {
		key := strings.Join(cls, classSep)
		u, ok := seen[key]
		if !ok {
			u = len(m.reps)
			seen[key] = u
			m.reps = append(m.reps, i)
			m.members = append(m.members, nil)
		}
		m.uniqueOf[i] = u
		m.members[u] = append(m.members[u], i)
	}
}

// seqU assembles the pairwise Sequence of one unique: its class tokens
// plus, when sonority is available, prosodic tags and per-position gap
// weights derived from them.
func (m *Multiple) seqU(u int, o AlignOptions) pairwise.Sequence {
	s := pairwise.Sequence{Tokens: m.classes[m.reps[u]]}
	if m.son != nil {
		tags := prosody.Tags(m.son[m.reps[u]])
		s.Tags = tags
		s.Weights = prosody.GapWeights(tags, o.GapOpen)
	}

	return s
}

// sonU returns the sonority contour of one unique, or nil.
func (m *Multiple) sonU(u int) []int {
	if m.son == nil {
		return nil
	}

	return m.son[m.reps[u]]
}

// Aligned reports whether an alignment has been published.
func (m *Multiple) Aligned() bool { return m.aligned }

// Alignment returns the published token alignment, one row per input
// sequence in input order. The rows are copies; mutating them does not
// disturb the session.
func (m *Multiple) Alignment() ([][]string, error) {
	if !m.aligned {
		return nil, ErrNotAligned
	}

	return cloneRows(m.alignment), nil
}

// SwapIndex returns the column triples accepted by the last SwapCheck,
// ascending and non-overlapping. Empty until SwapCheck reports true.
func (m *Multiple) SwapIndex() [][3]int {
	return append([][3]int(nil), m.swaps...)
}

// Uniques returns the deduplication groups: for every unique class
// sequence, the ascending input ids that share it.
func (m *Multiple) Uniques() [][]int {
	out := make([][]int, len(m.members))
	for u, mem := range m.members {
		out[u] = append([]int(nil), mem...)
	}

	return out
}

// Distances returns the unique-pair distance matrix computed by the
// last align call.
func (m *Multiple) Distances() ([][]float64, error) {
	if m.dist == nil {
		return nil, ErrNotAligned
	}

	return cloneFloats(m.dist), nil
}

// publish broadcasts the unique-level class alignment back onto every
// original sequence: the k-th original token lands in the column of the
// k-th non-gap cell of its unique's row.
func (m *Multiple) publish(alnU [][]string) {
	m.alnU = alnU
	m.alignment = make([][]string, len(m.tokens))
	for u, mem := range m.members {
		for _, orig := range mem {
			m.alignment[orig] = spliceRow(alnU[u], m.tokens[orig])
		}
	}
	m.aligned = true
}

// spliceRow replaces the non-gap cells of a class row with the original
// tokens, in order.
func spliceRow(row, toks []string) []string {
	out := make([]string, len(row))
	k := 0
	for c, cell := range row {
		if cell == pairwise.Gap {
			out[c] = pairwise.Gap
			continue
		}
		out[c] = toks[k]
		k++
	}

	return out
}

// cloneRows deep-copies a string matrix.
func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}

	return out
}

// cloneFloats deep-copies a float matrix.
func cloneFloats(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64(nil), row...)
	}

	return out
}
