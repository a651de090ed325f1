package leagues

import (
	"sort"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// Result is a completed fixture with its final score.
type Result struct {
	HomeID    int64
	AwayID    int64
	HomeScore int
	AwayScore int
}

type StandingsRow struct {
	Position       int    `json:"position"`
	ParticipantID  int64  `json:"participantId"`
	Name           string `json:"name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

// CalculateStandings folds results into a ranked table holding one row per
// participant. Rows are ordered by points, goal difference and goals scored,
// then by name and ID so equal records keep a stable order. Sides of a
// result that are not in participants are ignored.
func CalculateStandings(participants []Participant, results []Result) []StandingsRow {
	rows := make([]*StandingsRow, 0, len(participants))
	byID := make(map[int64]*StandingsRow, len(participants))
	for _, p := range participants {
		if _, ok := byID[p.ID]; ok {
			continue
		}
		row := &StandingsRow{ParticipantID: p.ID, Name: p.Name}
		byID[p.ID] = row
		rows = append(rows, row)
	}

	for _, result := range results {
		if home, ok := byID[result.HomeID]; ok {
			home.record(result.HomeScore, result.AwayScore)
		}
		if away, ok := byID[result.AwayID]; ok {
			away.record(result.AwayScore, result.HomeScore)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ParticipantID < b.ParticipantID
	})

	table := make([]StandingsRow, len(rows))
	for i, row := range rows {
		row.Position = i + 1
		table[i] = *row
	}
	return table
}

func (r *StandingsRow) record(scored, conceded int) {
	r.Played++
	r.GoalsFor += scored
	r.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		r.Won++
	case scored == conceded:
		r.Drawn++
	default:
		r.Lost++
	}
	r.GoalDifference = r.GoalsFor - r.GoalsAgainst
	r.Points = pointsForWin*r.Won + pointsForDraw*r.Drawn
}
