package pick

import "context"

// Repository exposes pick persistence. Edits are full replacements: the
// caller hands over the complete new set for a (user, slate) and the store
// deletes whatever was there before.
type Repository interface {
	ListTeamPicksBySlate(ctx context.Context, slateDate string) ([]Team, error)
	ListPlayerPicksBySlate(ctx context.Context, slateDate string) ([]Player, error)
	ListHighlightPicksBySlate(ctx context.Context, slateDate string) ([]Highlight, error)

	GetBundleByUserAndSlate(ctx context.Context, userID, slateDate string) (Bundle, error)

	ReplaceTeamPicks(ctx context.Context, userID, slateDate string, picks []Team) error
	ReplacePlayerPicks(ctx context.Context, userID, slateDate string, picks []Player) error
	ReplaceHighlightPicks(ctx context.Context, userID, slateDate string, picks []Highlight) error
}
