package result

import "context"

// Repository exposes result persistence. Operators may rewrite results at
// any time; settlement rereads them from here on every run.
type Repository interface {
	ListTeamResultsByGames(ctx context.Context, gameIDs []string) ([]Team, error)
	ListPlayerResultsByGames(ctx context.Context, gameIDs []string) ([]Player, error)
	ListHighlightResultsBySlate(ctx context.Context, slateDate string) ([]Highlight, error)

	UpsertTeamResult(ctx context.Context, item Team) error
	ReplacePlayerResults(ctx context.Context, gameID string, category string, items []Player) error
	ReplaceHighlightResults(ctx context.Context, slateDate string, items []Highlight) error
}
