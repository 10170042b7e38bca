package matcher

import "sort"

// Options carries the externally-tuned matching knobs. MinScore is the
// minimum similarity for a pair to be reported; MaxMatches caps how many
// questions a single topic may map to (0 means unlimited).
type Options struct {
	MinScore   float64
	MaxMatches int
}

// Match pairs one slide topic with one exam question. Matches are transient:
// produced once, consumed once by the report writer.
type Match struct {
	Topic      Record
	Question   Record
	Score      float64
	Confidence string
}

// Confidence buckets a score for quick manual review of the report.
func Confidence(score float64) string {
	switch {
	case score >= 0.85:
		return "high"
	case score >= 0.70:
		return "medium"
	default:
		return "low"
	}
}

// MatchTopics scores every (topic, question) pair independently and keeps
// pairs at or above MinScore. Each topic may map to several questions
// (one-to-many); within a topic, matches are ordered by descending score with
// question input order breaking ties, so output is deterministic. No global
// assignment is attempted. Unmatched topics and questions are returned in
// input order for the leftover reports.
func MatchTopics(topics, questions []Record, opts Options) (matches []Match, unmatchedTopics []Record, unmatchedQuestions []Record) {
	matchedQ := make([]bool, len(questions))

	for _, topic := range topics {
		type scored struct {
			idx   int
			score float64
		}
		var cands []scored
		for qi, q := range questions {
			s := Score(topic.Norm, q.Norm)
			if s >= opts.MinScore {
				cands = append(cands, scored{idx: qi, score: s})
			}
		}
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].score > cands[j].score
		})
		if opts.MaxMatches > 0 && len(cands) > opts.MaxMatches {
			cands = cands[:opts.MaxMatches]
		}
		if len(cands) == 0 {
			unmatchedTopics = append(unmatchedTopics, topic)
			continue
		}
		for _, sc := range cands {
			matchedQ[sc.idx] = true
			matches = append(matches, Match{
				Topic:      topic,
				Question:   questions[sc.idx],
				Score:      sc.score,
				Confidence: Confidence(sc.score),
			})
		}
	}

	for qi, q := range questions {
		if !matchedQ[qi] {
			unmatchedQuestions = append(unmatchedQuestions, q)
		}
	}
	return matches, unmatchedTopics, unmatchedQuestions
}
