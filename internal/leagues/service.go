package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	appdb "github.com/codr1/Fixturely/internal/db"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

// ScheduleOptions controls kickoff dates for generated fixtures. A zero
// StartDate means today.
type ScheduleOptions struct {
	StartDate time.Time
	Interval  time.Duration
}

type CupGroupDraw struct {
	Group dbgen.CupGroup  `json:"group"`
	Teams []dbgen.CupTeam `json:"teams"`
}

type GroupFixtures struct {
	Matches []dbgen.CupMatch `json:"matches"`
	// Skipped lists groups with fewer than two teams.
	Skipped []string `json:"skipped"`
}

type GroupStandings struct {
	Group dbgen.CupGroup `json:"group"`
	Rows  []StandingsRow `json:"rows"`
}

// Service runs fixture generation, group draws and standings recomputation
// against the database, holding the scope lock for each write.
type Service struct {
	db    *appdb.DB
	locks *ScopeLocks
	now   func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService returns a Service. A nil rng draws from the global source.
func NewService(database *appdb.DB, rng *rand.Rand) *Service {
	return &Service{
		db:    database,
		locks: NewScopeLocks(),
		now:   time.Now,
		rng:   rng,
	}
}

// GenerateDivisionFixtures builds the division's round-robin and writes it.
// Without regenerate an existing schedule yields ErrScheduleExists; with it
// the old fixtures and their results are replaced. Standings are reset in the
// same transaction.
func (s *Service) GenerateDivisionFixtures(ctx context.Context, divisionID int64, regenerate bool, opts ScheduleOptions) ([]dbgen.Match, error) {
	release, err := s.locks.Lock(ctx, DivisionScope(divisionID))
	if err != nil {
		return nil, err
	}
	defer release()

	var created []dbgen.Match
	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		if _, err := tx.Queries.GetDivision(ctx, divisionID); err != nil {
			return fmt.Errorf("load division %d: %w", divisionID, err)
		}
		participants, err := divisionParticipants(ctx, tx.Queries, divisionID)
		if err != nil {
			return err
		}
		fixtures, err := GenerateRoundRobin(participants)
		if err != nil {
			return err
		}
		if !regenerate {
			existing, err := tx.Queries.CountDivisionMatches(ctx, divisionID)
			if err != nil {
				return fmt.Errorf("count division matches: %w", err)
			}
			if existing > 0 {
				return ErrScheduleExists
			}
		}
		fixtures = ScheduleRounds(fixtures, s.startDate(opts), opts.Interval)

		if _, err := tx.Queries.DeleteDivisionMatches(ctx, divisionID); err != nil {
			return fmt.Errorf("delete division matches: %w", err)
		}
		created = make([]dbgen.Match, 0, len(fixtures))
		for _, fixture := range fixtures {
			match, err := tx.Queries.CreateMatch(ctx, dbgen.CreateMatchParams{
				DivisionID:  divisionID,
				RoundNumber: int64(fixture.Round),
				HomeTeamID:  fixture.Home.ID,
				AwayTeamID:  fixture.Away.ID,
				MatchDate:   sql.NullTime{Time: fixture.Kickoff, Valid: !fixture.Kickoff.IsZero()},
			})
			if err != nil {
				return fmt.Errorf("create match round %d: %w", fixture.Round, err)
			}
			created = append(created, match)
		}
		return writeDivisionStandings(ctx, tx.Queries, divisionID, CalculateStandings(participants, nil))
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int64("division_id", divisionID).
		Int("fixtures", len(created)).
		Bool("regenerate", regenerate).
		Msg("Generated division fixtures")
	return created, nil
}

// ClearDivisionFixtures deletes every fixture of the division and zeroes its
// table.
func (s *Service) ClearDivisionFixtures(ctx context.Context, divisionID int64) (int64, error) {
	release, err := s.locks.Lock(ctx, DivisionScope(divisionID))
	if err != nil {
		return 0, err
	}
	defer release()

	var deleted int64
	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		participants, err := divisionParticipants(ctx, tx.Queries, divisionID)
		if err != nil {
			return err
		}
		deleted, err = tx.Queries.DeleteDivisionMatches(ctx, divisionID)
		if err != nil {
			return fmt.Errorf("delete division matches: %w", err)
		}
		return writeDivisionStandings(ctx, tx.Queries, divisionID, CalculateStandings(participants, nil))
	})
	return deleted, err
}

// RecomputeDivisionStandings rebuilds the division table from its completed
// matches and replaces the stored rows.
func (s *Service) RecomputeDivisionStandings(ctx context.Context, divisionID int64) ([]StandingsRow, error) {
	release, err := s.locks.Lock(ctx, DivisionScope(divisionID))
	if err != nil {
		return nil, err
	}
	defer release()

	var table []StandingsRow
	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		participants, err := divisionParticipants(ctx, tx.Queries, divisionID)
		if err != nil {
			return err
		}
		rows, err := tx.Queries.ListCompletedDivisionResults(ctx, divisionID)
		if err != nil {
			return fmt.Errorf("list division results: %w", err)
		}
		results := make([]Result, 0, len(rows))
		for _, row := range rows {
			if !row.HomeScore.Valid || !row.AwayScore.Valid {
				continue
			}
			results = append(results, Result{
				HomeID:    row.HomeTeamID,
				AwayID:    row.AwayTeamID,
				HomeScore: int(row.HomeScore.Int64),
				AwayScore: int(row.AwayScore.Int64),
			})
		}
		table = CalculateStandings(participants, results)
		return writeDivisionStandings(ctx, tx.Queries, divisionID, table)
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// DrawCupGroups replaces the cup's groups with a random draw. groupSize 0
// uses the cup's teams_per_group.
func (s *Service) DrawCupGroups(ctx context.Context, cupID int64, groupSize int) ([]CupGroupDraw, error) {
	release, err := s.locks.Lock(ctx, CupScope(cupID))
	if err != nil {
		return nil, err
	}
	defer release()

	var draws []CupGroupDraw
	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		cup, err := tx.Queries.GetCup(ctx, cupID)
		if err != nil {
			return fmt.Errorf("load cup %d: %w", cupID, err)
		}
		if groupSize == 0 {
			groupSize = int(cup.TeamsPerGroup)
		}
		teams, err := tx.Queries.ListCupTeams(ctx, cupID)
		if err != nil {
			return fmt.Errorf("list cup teams: %w", err)
		}
		if int64(len(teams)) < cup.TotalTeams {
			return fmt.Errorf("%w: %d of %d teams registered", ErrRegistrationIncomplete, len(teams), cup.TotalTeams)
		}

		byID := make(map[int64]dbgen.CupTeam, len(teams))
		participants := make([]Participant, 0, len(teams))
		for _, team := range teams {
			byID[team.ID] = team
			participants = append(participants, Participant{ID: team.ID, Name: team.Name})
		}

		groups, err := s.drawGroups(participants, groupSize)
		if err != nil {
			return err
		}

		if err := tx.Queries.ClearCupTeamGroups(ctx, cupID); err != nil {
			return fmt.Errorf("clear group assignments: %w", err)
		}
		if err := tx.Queries.DeleteCupGroups(ctx, cupID); err != nil {
			return fmt.Errorf("delete cup groups: %w", err)
		}

		draws = make([]CupGroupDraw, 0, len(groups))
		for _, group := range groups {
			created, err := tx.Queries.CreateCupGroup(ctx, dbgen.CreateCupGroupParams{
				CupID:      cupID,
				GroupName:  group.Name(),
				GroupOrder: int64(group.Order),
			})
			if err != nil {
				return fmt.Errorf("create %s: %w", group.Name(), err)
			}
			draw := CupGroupDraw{Group: created, Teams: make([]dbgen.CupTeam, 0, len(group.Members))}
			for _, member := range group.Members {
				if err := assignTeam(ctx, tx.Queries, cupID, created.ID, member.ID); err != nil {
					return err
				}
				team := byID[member.ID]
				team.GroupID = sql.NullInt64{Int64: created.ID, Valid: true}
				draw.Teams = append(draw.Teams, team)
			}
			if err := writeGroupStandings(ctx, tx.Queries, created.ID, CalculateStandings(group.Members, nil)); err != nil {
				return err
			}
			draws = append(draws, draw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int64("cup_id", cupID).
		Int("groups", len(draws)).
		Int("group_size", groupSize).
		Msg("Drew cup groups")
	return draws, nil
}

// CreateManualGroup adds one group with explicitly chosen teams. Teams must
// belong to the cup and must not already sit in another group.
func (s *Service) CreateManualGroup(ctx context.Context, cupID int64, name string, teamIDs []int64) (CupGroupDraw, error) {
	release, err := s.locks.Lock(ctx, CupScope(cupID))
	if err != nil {
		return CupGroupDraw{}, err
	}
	defer release()

	name = strings.TrimSpace(name)
	var draw CupGroupDraw
	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		if _, err := tx.Queries.GetCup(ctx, cupID); err != nil {
			return fmt.Errorf("load cup %d: %w", cupID, err)
		}
		groups, err := tx.Queries.ListCupGroups(ctx, cupID)
		if err != nil {
			return fmt.Errorf("list cup groups: %w", err)
		}
		teams, err := tx.Queries.ListCupTeams(ctx, cupID)
		if err != nil {
			return fmt.Errorf("list cup teams: %w", err)
		}

		byID := make(map[int64]dbgen.CupTeam, len(teams))
		for _, team := range teams {
			byID[team.ID] = team
		}
		for _, id := range teamIDs {
			if _, ok := byID[id]; !ok {
				return fmt.Errorf("%w: %d", ErrUnknownParticipant, id)
			}
		}

		assignment := make([]ManualGroup, 0, len(groups)+1)
		existing := make(map[int64]int, len(groups))
		for _, group := range groups {
			existing[group.ID] = len(assignment)
			assignment = append(assignment, ManualGroup{Name: group.GroupName})
		}
		for _, team := range teams {
			if !team.GroupID.Valid {
				continue
			}
			if idx, ok := existing[team.GroupID.Int64]; ok {
				assignment[idx].ParticipantIDs = append(assignment[idx].ParticipantIDs, team.ID)
			}
		}
		// groups emptied by team removal are not the caller's problem
		kept := assignment[:0]
		for _, group := range assignment {
			if len(group.ParticipantIDs) > 0 {
				kept = append(kept, group)
			}
		}
		if err := ValidateManualAssignment(append(kept, ManualGroup{Name: name, ParticipantIDs: teamIDs})); err != nil {
			return err
		}
		for _, group := range groups {
			if strings.EqualFold(group.GroupName, name) {
				return fmt.Errorf("%w: %s", ErrDuplicateGroupName, name)
			}
		}

		maxOrder, err := tx.Queries.GetMaxCupGroupOrder(ctx, cupID)
		if err != nil {
			return fmt.Errorf("load group order: %w", err)
		}
		created, err := tx.Queries.CreateCupGroup(ctx, dbgen.CreateCupGroupParams{
			CupID:      cupID,
			GroupName:  name,
			GroupOrder: maxOrder + 1,
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}

		members := make([]Participant, 0, len(teamIDs))
		draw = CupGroupDraw{Group: created, Teams: make([]dbgen.CupTeam, 0, len(teamIDs))}
		for _, id := range teamIDs {
			if err := assignTeam(ctx, tx.Queries, cupID, created.ID, id); err != nil {
				return err
			}
			team := byID[id]
			team.GroupID = sql.NullInt64{Int64: created.ID, Valid: true}
			draw.Teams = append(draw.Teams, team)
			members = append(members, Participant{ID: team.ID, Name: team.Name})
		}
		return writeGroupStandings(ctx, tx.Queries, created.ID, CalculateStandings(members, nil))
	})
	if err != nil {
		return CupGroupDraw{}, err
	}
	return draw, nil
}

// DeleteCupGroup removes a group. Its teams become unassigned and its
// fixtures and standings go with it.
func (s *Service) DeleteCupGroup(ctx context.Context, cupID, groupID int64) error {
	release, err := s.locks.Lock(ctx, CupScope(cupID))
	if err != nil {
		return err
	}
	defer release()

	return s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		deleted, err := tx.Queries.DeleteCupGroup(ctx, dbgen.DeleteCupGroupParams{ID: groupID, CupID: cupID})
		if err != nil {
			return fmt.Errorf("delete cup group %d: %w", groupID, err)
		}
		if deleted == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// GenerateCupGroupFixtures replaces every group-stage fixture of the cup with
// a fresh round-robin per group. Groups with fewer than two teams are
// reported in Skipped.
func (s *Service) GenerateCupGroupFixtures(ctx context.Context, cupID int64, opts ScheduleOptions) (GroupFixtures, error) {
	release, err := s.locks.Lock(ctx, CupScope(cupID))
	if err != nil {
		return GroupFixtures{}, err
	}
	defer release()

	var out GroupFixtures
	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		if _, err := tx.Queries.GetCup(ctx, cupID); err != nil {
			return fmt.Errorf("load cup %d: %w", cupID, err)
		}
		groups, err := tx.Queries.ListCupGroups(ctx, cupID)
		if err != nil {
			return fmt.Errorf("list cup groups: %w", err)
		}
		if len(groups) == 0 {
			return ErrNoGroups
		}

		type plan struct {
			group        dbgen.CupGroup
			participants []Participant
			fixtures     []Fixture
		}
		start := s.startDate(opts)
		plans := make([]plan, 0, len(groups))
		for _, group := range groups {
			participants, err := groupParticipants(ctx, tx.Queries, group.ID)
			if err != nil {
				return err
			}
			p := plan{group: group, participants: participants}
			if len(participants) < 2 {
				out.Skipped = append(out.Skipped, group.GroupName)
			} else {
				fixtures, err := GenerateRoundRobin(participants)
				if err != nil {
					return fmt.Errorf("%s: %w", group.GroupName, err)
				}
				p.fixtures = ScheduleRounds(fixtures, start, opts.Interval)
			}
			plans = append(plans, p)
		}

		if _, err := tx.Queries.DeleteCupGroupStageMatches(ctx, cupID); err != nil {
			return fmt.Errorf("delete group stage matches: %w", err)
		}
		for _, p := range plans {
			groupID := sql.NullInt64{Int64: p.group.ID, Valid: true}
			for _, fixture := range p.fixtures {
				match, err := tx.Queries.CreateCupMatch(ctx, dbgen.CreateCupMatchParams{
					CupID:         cupID,
					GroupID:       groupID,
					Stage:         "group",
					RoundNumber:   int64(fixture.Round),
					HomeCupTeamID: fixture.Home.ID,
					AwayCupTeamID: fixture.Away.ID,
					MatchDate:     sql.NullTime{Time: fixture.Kickoff, Valid: !fixture.Kickoff.IsZero()},
				})
				if err != nil {
					return fmt.Errorf("create %s match round %d: %w", p.group.GroupName, fixture.Round, err)
				}
				out.Matches = append(out.Matches, match)
			}
			if err := writeGroupStandings(ctx, tx.Queries, p.group.ID, CalculateStandings(p.participants, nil)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return GroupFixtures{}, err
	}

	log.Ctx(ctx).Info().
		Int64("cup_id", cupID).
		Int("fixtures", len(out.Matches)).
		Strs("skipped_groups", out.Skipped).
		Msg("Generated cup group fixtures")
	return out, nil
}

// RecomputeGroupStandings rebuilds one group's table. It holds the lock of
// the group's cup.
func (s *Service) RecomputeGroupStandings(ctx context.Context, groupID int64) (GroupStandings, error) {
	group, err := s.db.Queries.GetCupGroup(ctx, groupID)
	if err != nil {
		return GroupStandings{}, fmt.Errorf("load cup group %d: %w", groupID, err)
	}

	release, err := s.locks.Lock(ctx, CupScope(group.CupID))
	if err != nil {
		return GroupStandings{}, err
	}
	defer release()

	var out GroupStandings
	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		var err error
		out, err = recomputeGroup(ctx, tx.Queries, group)
		return err
	})
	if err != nil {
		return GroupStandings{}, err
	}
	return out, nil
}

// RecomputeCupStandings rebuilds the table of every group in the cup.
func (s *Service) RecomputeCupStandings(ctx context.Context, cupID int64) ([]GroupStandings, error) {
	release, err := s.locks.Lock(ctx, CupScope(cupID))
	if err != nil {
		return nil, err
	}
	defer release()

	var out []GroupStandings
	err = s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		groups, err := tx.Queries.ListCupGroups(ctx, cupID)
		if err != nil {
			return fmt.Errorf("list cup groups: %w", err)
		}
		out = make([]GroupStandings, 0, len(groups))
		for _, group := range groups {
			standings, err := recomputeGroup(ctx, tx.Queries, group)
			if err != nil {
				return err
			}
			out = append(out, standings)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RefreshAllStandings recomputes every division of an active league and
// every cup in its group stage. It keeps going after a failure and returns
// the joined errors.
func (s *Service) RefreshAllStandings(ctx context.Context) error {
	logger := log.Ctx(ctx)

	divisions, err := s.db.Queries.ListActiveDivisions(ctx)
	if err != nil {
		return fmt.Errorf("list active divisions: %w", err)
	}
	cups, err := s.db.Queries.ListCupsByStatus(ctx, "group_stage")
	if err != nil {
		return fmt.Errorf("list group stage cups: %w", err)
	}

	var errs []error
	for _, division := range divisions {
		if _, err := s.RecomputeDivisionStandings(ctx, division.ID); err != nil {
			logger.Error().Err(err).Int64("division_id", division.ID).Msg("Failed to refresh division standings")
			errs = append(errs, fmt.Errorf("division %d: %w", division.ID, err))
		}
	}
	for _, cup := range cups {
		if _, err := s.RecomputeCupStandings(ctx, cup.ID); err != nil {
			logger.Error().Err(err).Int64("cup_id", cup.ID).Msg("Failed to refresh cup standings")
			errs = append(errs, fmt.Errorf("cup %d: %w", cup.ID, err))
		}
	}

	logger.Info().
		Int("divisions", len(divisions)).
		Int("cups", len(cups)).
		Int("failures", len(errs)).
		Msg("Refreshed standings")
	return errors.Join(errs...)
}

func (s *Service) drawGroups(participants []Participant, groupSize int) ([]Group, error) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return DrawGroups(participants, groupSize, s.rng)
}

func (s *Service) startDate(opts ScheduleOptions) time.Time {
	if !opts.StartDate.IsZero() {
		return opts.StartDate
	}
	return truncateDate(s.now())
}

func divisionParticipants(ctx context.Context, q *dbgen.Queries, divisionID int64) ([]Participant, error) {
	teams, err := q.ListTeamsByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("list division teams: %w", err)
	}
	participants := make([]Participant, 0, len(teams))
	for _, team := range teams {
		participants = append(participants, Participant{ID: team.ID, Name: team.Name})
	}
	return participants, nil
}

func groupParticipants(ctx context.Context, q *dbgen.Queries, groupID int64) ([]Participant, error) {
	teams, err := q.ListCupTeamsByGroup(ctx, sql.NullInt64{Int64: groupID, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("list group teams: %w", err)
	}
	participants := make([]Participant, 0, len(teams))
	for _, team := range teams {
		participants = append(participants, Participant{ID: team.ID, Name: team.Name})
	}
	return participants, nil
}

func assignTeam(ctx context.Context, q *dbgen.Queries, cupID, groupID, teamID int64) error {
	updated, err := q.AssignCupTeamGroup(ctx, dbgen.AssignCupTeamGroupParams{
		GroupID: sql.NullInt64{Int64: groupID, Valid: true},
		ID:      teamID,
		CupID:   cupID,
	})
	if err != nil {
		return fmt.Errorf("assign team %d: %w", teamID, err)
	}
	if updated == 0 {
		return fmt.Errorf("%w: %d", ErrUnknownParticipant, teamID)
	}
	return nil
}

func recomputeGroup(ctx context.Context, q *dbgen.Queries, group dbgen.CupGroup) (GroupStandings, error) {
	participants, err := groupParticipants(ctx, q, group.ID)
	if err != nil {
		return GroupStandings{}, err
	}
	rows, err := q.ListCompletedGroupResults(ctx, sql.NullInt64{Int64: group.ID, Valid: true})
	if err != nil {
		return GroupStandings{}, fmt.Errorf("list group results: %w", err)
	}
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		if !row.HomeScore.Valid || !row.AwayScore.Valid {
			continue
		}
		results = append(results, Result{
			HomeID:    row.HomeCupTeamID,
			AwayID:    row.AwayCupTeamID,
			HomeScore: int(row.HomeScore.Int64),
			AwayScore: int(row.AwayScore.Int64),
		})
	}
	table := CalculateStandings(participants, results)
	if err := writeGroupStandings(ctx, q, group.ID, table); err != nil {
		return GroupStandings{}, err
	}
	return GroupStandings{Group: group, Rows: table}, nil
}

func writeDivisionStandings(ctx context.Context, q *dbgen.Queries, divisionID int64, table []StandingsRow) error {
	if err := q.DeleteDivisionStandings(ctx, divisionID); err != nil {
		return fmt.Errorf("delete division standings: %w", err)
	}
	for _, row := range table {
		if err := q.InsertDivisionStanding(ctx, dbgen.InsertDivisionStandingParams{
			DivisionID:     divisionID,
			TeamID:         row.ParticipantID,
			Position:       int64(row.Position),
			Played:         int64(row.Played),
			Won:            int64(row.Won),
			Drawn:          int64(row.Drawn),
			Lost:           int64(row.Lost),
			GoalsFor:       int64(row.GoalsFor),
			GoalsAgainst:   int64(row.GoalsAgainst),
			GoalDifference: int64(row.GoalDifference),
			Points:         int64(row.Points),
		}); err != nil {
			return fmt.Errorf("insert standing for team %d: %w", row.ParticipantID, err)
		}
	}
	return nil
}

func writeGroupStandings(ctx context.Context, q *dbgen.Queries, groupID int64, table []StandingsRow) error {
	if err := q.DeleteGroupStandings(ctx, groupID); err != nil {
		return fmt.Errorf("delete group standings: %w", err)
	}
	for _, row := range table {
		if err := q.InsertGroupStanding(ctx, dbgen.InsertGroupStandingParams{
			GroupID:        groupID,
			CupTeamID:      row.ParticipantID,
			Position:       int64(row.Position),
			Played:         int64(row.Played),
			Won:            int64(row.Won),
			Drawn:          int64(row.Drawn),
			Lost:           int64(row.Lost),
			GoalsFor:       int64(row.GoalsFor),
			GoalsAgainst:   int64(row.GoalsAgainst),
			GoalDifference: int64(row.GoalDifference),
			Points:         int64(row.Points),
		}); err != nil {
			return fmt.Errorf("insert standing for cup team %d: %w", row.ParticipantID, err)
		}
	}
	return nil
}
