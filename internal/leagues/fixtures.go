package leagues

import (
	"fmt"
	"time"
)

// DefaultRoundInterval is the spacing between consecutive rounds when the
// caller does not choose one.
const DefaultRoundInterval = 7 * 24 * time.Hour

// Participant is a team taking part in a division or a cup group.
type Participant struct {
	ID   int64
	Name string
}

// Fixture is one generated pairing. Kickoff is zero until ScheduleRounds
// assigns it.
type Fixture struct {
	Round   int
	Home    Participant
	Away    Participant
	Kickoff time.Time
}

// GenerateRoundRobin builds a single round-robin schedule with the circle
// method. Every pair meets once; odd fields give each participant one bye.
func GenerateRoundRobin(participants []Participant) ([]Fixture, error) {
	if len(participants) < 2 {
		return nil, ErrTooFewParticipants
	}
	if err := ensureUnique(participants); err != nil {
		return nil, err
	}
	return buildRoundRobinPairs(participants), nil
}

func ensureUnique(participants []Participant) error {
	seen := make(map[int64]struct{}, len(participants))
	for _, p := range participants {
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateParticipant, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func buildRoundRobinPairs(participants []Participant) []Fixture {
	working := make([]*Participant, 0, len(participants)+1)
	for i := range participants {
		working = append(working, &participants[i])
	}
	// nil is the bye slot
	if len(working)%2 == 1 {
		working = append(working, nil)
	}

	rounds := len(working) - 1
	fixtures := make([]Fixture, 0, rounds*len(working)/2)

	for round := 0; round < rounds; round++ {
		for i := 0; i < len(working)/2; i++ {
			left := working[i]
			right := working[len(working)-1-i]
			if left == nil || right == nil {
				continue
			}
			home := *left
			away := *right
			if i == 0 && round%2 == 1 {
				home, away = away, home
			}
			fixtures = append(fixtures, Fixture{
				Round: round + 1,
				Home:  home,
				Away:  away,
			})
		}
		rotateParticipants(working)
	}

	return fixtures
}

// rotateParticipants keeps index 0 fixed and moves the last slot to index 1.
func rotateParticipants(slots []*Participant) {
	if len(slots) <= 2 {
		return
	}
	last := slots[len(slots)-1]
	copy(slots[2:], slots[1:len(slots)-1])
	slots[1] = last
}

// ScheduleRounds returns a copy of fixtures with round r kicking off at
// start + (r-1)*interval. A non-positive interval uses DefaultRoundInterval.
func ScheduleRounds(fixtures []Fixture, start time.Time, interval time.Duration) []Fixture {
	if interval <= 0 {
		interval = DefaultRoundInterval
	}
	scheduled := make([]Fixture, len(fixtures))
	for i, fixture := range fixtures {
		fixture.Kickoff = start.Add(time.Duration(fixture.Round-1) * interval)
		scheduled[i] = fixture
	}
	return scheduled
}

// RoundCount is the number of rounds a full round-robin needs for n
// participants.
func RoundCount(n int) int {
	if n < 2 {
		return 0
	}
	if n%2 == 1 {
		return n
	}
	return n - 1
}

func truncateDate(value time.Time) time.Time {
	loc := value.Location()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, loc)
}
