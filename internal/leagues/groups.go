package leagues

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Group is one drawn cup group. Order is 1-based.
type Group struct {
	Label   string
	Order   int
	Members []Participant
}

// Name is the stored display name, e.g. "Group A".
func (g Group) Name() string {
	return "Group " + g.Label
}

// GroupLabel maps a 0-based index to A..Z, AA, AB, ...
func GroupLabel(index int) string {
	if index < 0 {
		return ""
	}
	var label []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		label = append([]byte{byte('A' + (n-1)%26)}, label...)
	}
	return string(label)
}

// GroupCount is ceil(participants / groupSize).
func GroupCount(participants, groupSize int) int {
	if participants <= 0 || groupSize <= 0 {
		return 0
	}
	return (participants + groupSize - 1) / groupSize
}

// DrawGroups shuffles participants and deals them into ceil(M/K) groups in
// turn. Trailing groups may end up one short. A nil rng uses the global
// source.
func DrawGroups(participants []Participant, groupSize int, rng *rand.Rand) ([]Group, error) {
	if groupSize < 1 {
		return nil, ErrInvalidGroupSize
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if err := ensureUnique(participants); err != nil {
		return nil, err
	}

	shuffled := make([]Participant, len(participants))
	copy(shuffled, participants)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	count := GroupCount(len(shuffled), groupSize)
	groups := make([]Group, count)
	for i := range groups {
		groups[i] = Group{
			Label:   GroupLabel(i),
			Order:   i + 1,
			Members: make([]Participant, 0, groupSize),
		}
	}
	for i, p := range shuffled {
		g := &groups[i%count]
		g.Members = append(g.Members, p)
	}
	return groups, nil
}

// ManualGroup is a caller-chosen group membership.
type ManualGroup struct {
	Name           string
	ParticipantIDs []int64
}

// ValidateManualAssignment checks that every group is named and non-empty,
// that names are unique, and that no participant sits in two groups.
func ValidateManualAssignment(groups []ManualGroup) error {
	names := make(map[string]struct{}, len(groups))
	owner := make(map[int64]string)
	for _, group := range groups {
		name := strings.TrimSpace(group.Name)
		if name == "" {
			return ErrEmptyGroupName
		}
		key := strings.ToLower(name)
		if _, ok := names[key]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateGroupName, name)
		}
		names[key] = struct{}{}

		if len(group.ParticipantIDs) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyGroup, name)
		}
		for _, id := range group.ParticipantIDs {
			if prev, ok := owner[id]; ok {
				if prev == name {
					return fmt.Errorf("%w: %d", ErrDuplicateParticipant, id)
				}
				return fmt.Errorf("%w: %d is in %s", ErrAlreadyGrouped, id, prev)
			}
			owner[id] = name
		}
	}
	return nil
}
