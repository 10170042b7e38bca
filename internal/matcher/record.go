package matcher

// Record is one normalized unit of slide or exam content. Page is the
// 1-based PDF page for slide topics and the input line ordinal for exam
// questions; 0 means unknown. Records are built once and never mutated.
type Record struct {
	Source string
	Page   int
	Raw    string
	Norm   string
}
