package projections

import (
	"context"
	"time"

	storageFixture "clubhouse/internal/adapters/storage/fixture"
	"clubhouse/internal/application/listutil"
	domainFixture "clubhouse/internal/domain/fixture"
)

// GetFixturesResultsQuery carries the fixtures screen's filters. A zero
// month or empty age group means no filtering on that axis.
type GetFixturesResultsQuery struct {
	Month    int // 1-12, 0 for all
	AgeGroup string
	Now      time.Time
}

// GetFixturesResultsResult carries upcoming fixtures and past results, each
// grouped by calendar month for display.
type GetFixturesResultsResult struct {
	Upcoming []listutil.MonthGroup[domainFixture.Fixture]
	Results  []listutil.MonthGroup[domainFixture.Result]
}

// GetFixturesResultsDeps holds dependencies for GetFixturesResults.
type GetFixturesResultsDeps struct {
	FixtureStore FixtureStore
}

// QueryGetFixturesResults retrieves the fixtures and results screens' data.
// Both screens share the same filter and group-by-month helpers, fed with
// their own date extractor.
// PRE: query.Now is the display date
// POST: upcoming fixtures are on or after Now's date; results are newest-last
// within chronological month groups
func QueryGetFixturesResults(ctx context.Context, query GetFixturesResultsQuery, deps GetFixturesResultsDeps) (GetFixturesResultsResult, error) {
	fixtures, err := deps.FixtureStore.List(ctx, storageFixture.ListFilter{AgeGroup: query.AgeGroup})
	if err != nil {
		return GetFixturesResultsResult{}, err
	}
	results, err := deps.FixtureStore.ListResults(ctx, storageFixture.ListFilter{AgeGroup: query.AgeGroup})
	if err != nil {
		return GetFixturesResultsResult{}, err
	}

	fixtureDate := func(f domainFixture.Fixture) time.Time { return f.Date }
	resultDate := func(r domainFixture.Result) time.Time { return r.Date }

	upcoming := listutil.Filter(fixtures,
		func(f domainFixture.Fixture) bool { return f.IsUpcoming(query.Now) },
		listutil.ByMonth(query.Month, fixtureDate),
	)
	played := listutil.Filter(results,
		listutil.ByMonth(query.Month, resultDate),
	)

	return GetFixturesResultsResult{
		Upcoming: listutil.GroupByMonth(upcoming, fixtureDate),
		Results:  listutil.GroupByMonth(played, resultDate),
	}, nil
}
