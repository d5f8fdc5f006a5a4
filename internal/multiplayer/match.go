package multiplayer

// ResultReason describes how a match was decided.
type ResultReason string

const (
	ReasonTarget  ResultReason = "target"  // winner reached the target first
	ReasonForfeit ResultReason = "forfeit" // loser left a match in progress
)

// MatchResult is a decided match.
type MatchResult struct {
	Code       string
	LevelIndex int
	Seed       int64
	Winner     SessionID
	Loser      SessionID
	Reason     ResultReason
}

// MatchResultSaver is an interface for saving match results.
// This allows the coordinator to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResult) error
}
