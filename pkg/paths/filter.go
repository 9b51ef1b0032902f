package paths

import "math/rand/v2"

// DefaultSeed seeds the train/validation split so repeated runs agree.
const DefaultSeed = uint64(42)

// FilterOptions controls which paths survive filtering and how the
// survivors are split into training and validation sets.
type FilterOptions struct {
	// WeightThreshold drops paths whose weight is below it.
	WeightThreshold float64
	// Split is the probability that a surviving path goes to the
	// validation set. Zero keeps everything in the training set.
	Split float64
	// Seed for the split RNG. Zero means DefaultSeed.
	Seed uint64
}

// FilterStats counts what happened to the paths fed to a Splitter.
type FilterStats struct {
	Read           int
	BelowThreshold int
	Training       int
	Validation     int
}

// Splitter applies FilterOptions to a stream of paths.
type Splitter struct {
	opts       FilterOptions
	rng        *rand.Rand
	training   *Set
	validation *Set
	stats      FilterStats
}

// NewSplitter creates a splitter. Vertex names known to names (may be nil)
// are carried over to both output sets.
func NewSplitter(opts FilterOptions, names *Set) *Splitter {
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	s := &Splitter{
		opts:       opts,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		training:   NewSet(),
		validation: NewSet(),
	}
	if names != nil {
		s.training.MergeNames(names)
		s.validation.MergeNames(names)
	}
	return s
}

// Add routes one path. Paths below the weight threshold are counted and dropped.
func (s *Splitter) Add(p Path) {
	s.stats.Read++
	if float64(p.Weight) < s.opts.WeightThreshold {
		s.stats.BelowThreshold++
		return
	}
	if s.opts.Split > 0 && s.rng.Float64() < s.opts.Split {
		s.stats.Validation++
		s.validation.AddPath(p)
		return
	}
	s.stats.Training++
	s.training.AddPath(p)
}

// AddSet routes every path of set in order.
func (s *Splitter) AddSet(set *Set) {
	for _, p := range set.Paths() {
		s.Add(p)
	}
}

// Training returns the training (or, without a split, the only) output set.
func (s *Splitter) Training() *Set { return s.training }

// Validation returns the validation output set. It is empty when Split is 0.
func (s *Splitter) Validation() *Set { return s.validation }

// Stats returns the running counters.
func (s *Splitter) Stats() FilterStats { return s.stats }
