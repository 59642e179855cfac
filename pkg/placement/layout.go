package placement

import "fmt"

// Candidate identifies which of the two symmetric layouts was selected.
type Candidate int

const (
	// CandidateNone means no post fits and the layout is empty.
	CandidateNone Candidate = iota
	// CandidateMoved centers the span on the gap between the two middle posts.
	CandidateMoved
	// CandidateCenter centers the span on a single post.
	CandidateCenter
)

var candidateNames = map[Candidate]string{
	CandidateNone:   "none",
	CandidateMoved:  "moved",
	CandidateCenter: "center",
}

// String returns the candidate's lowercase name.
func (c Candidate) String() string {
	if s, ok := candidateNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Candidate(%d)", int(c))
}

// MarshalText encodes the candidate by name.
func (c Candidate) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a candidate name.
func (c *Candidate) UnmarshalText(b []byte) error {
	for k, v := range candidateNames {
		if v == string(b) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown candidate %q", b)
}

// Layout is the result of placing posts along one span.
type Layout struct {
	Length    float64   `json:"length"`
	PostWidth float64   `json:"post_width"`
	TargetGap float64   `json:"target_gap"`
	Candidate Candidate `json:"candidate"`
	Offsets   []float64 `json:"offsets"`
}

// Posts returns the number of placed posts.
func (l Layout) Posts() int { return len(l.Offsets) }

// Empty reports whether no post could be placed.
func (l Layout) Empty() bool { return len(l.Offsets) == 0 }

// Pitch returns the center-to-center distance between adjacent posts.
func (l Layout) Pitch() float64 { return l.TargetGap + l.PostWidth }

// LeadingClearance returns the distance from the span start to the first post.
func (l Layout) LeadingClearance() float64 {
	if l.Empty() {
		return 0
	}
	return l.Offsets[0]
}

// TrailingClearance returns the distance from the last post to the span end.
func (l Layout) TrailingClearance() float64 {
	if l.Empty() {
		return 0
	}
	return l.Length - l.Offsets[len(l.Offsets)-1] - l.PostWidth
}

// Gaps returns every open stretch of railing from left to right: the leading
// clearance, each gap between adjacent posts, and the trailing clearance.
// An empty layout has no gaps.
func (l Layout) Gaps() []float64 {
	if l.Empty() {
		return nil
	}
	gaps := make([]float64, 0, len(l.Offsets)+1)
	gaps = append(gaps, l.LeadingClearance())
	for i := 1; i < len(l.Offsets); i++ {
		gaps = append(gaps, l.Offsets[i]-l.Offsets[i-1]-l.PostWidth)
	}
	return append(gaps, l.TrailingClearance())
}
