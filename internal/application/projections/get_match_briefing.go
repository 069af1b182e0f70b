package projections

import (
	"context"
	"sort"
	"time"

	domainFixture "clubhouse/internal/domain/fixture"
)

// Briefing is one upcoming match the player has been selected for.
type Briefing struct {
	Fixture      domainFixture.Fixture
	MeetingTime  string
	MeetingPlace string
	Notes        string
}

// GetMatchBriefingQuery carries query parameters.
type GetMatchBriefingQuery struct {
	AccountID string
	Now       time.Time
}

// GetMatchBriefingResult carries the player's briefings, soonest first.
type GetMatchBriefingResult struct {
	PlayerName string
	Briefings  []Briefing
}

// GetMatchBriefingDeps holds dependencies for GetMatchBriefing.
type GetMatchBriefingDeps struct {
	PlayerStore  PlayerStore
	FixtureStore FixtureStore
}

// QueryGetMatchBriefing retrieves the match briefing screen for a player:
// every upcoming fixture whose selection includes them, with the meeting
// arrangements.
// PRE: AccountID belongs to a player account
// POST: briefings are ordered by fixture date, soonest first
func QueryGetMatchBriefing(ctx context.Context, query GetMatchBriefingQuery, deps GetMatchBriefingDeps) (GetMatchBriefingResult, error) {
	pl, err := deps.PlayerStore.GetByAccountID(ctx, query.AccountID)
	if err != nil {
		return GetMatchBriefingResult{}, err
	}

	selections, err := deps.FixtureStore.ListSelections(ctx)
	if err != nil {
		return GetMatchBriefingResult{}, err
	}

	result := GetMatchBriefingResult{PlayerName: pl.FullName()}
	for _, sel := range selections {
		if !sel.Includes(pl.ID) {
			continue
		}
		f, err := deps.FixtureStore.GetByID(ctx, sel.FixtureID)
		if err != nil {
			// Selection may outlive its fixture; skip rather than fail the screen
			continue
		}
		if !f.IsUpcoming(query.Now) {
			continue
		}
		result.Briefings = append(result.Briefings, Briefing{
			Fixture:      f,
			MeetingTime:  sel.MeetingTime,
			MeetingPlace: sel.MeetingPlace,
			Notes:        sel.Notes,
		})
	}

	sort.Slice(result.Briefings, func(i, j int) bool {
		return result.Briefings[i].Fixture.Date.Before(result.Briefings[j].Fixture.Date)
	})
	return result, nil
}
