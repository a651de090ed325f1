package leagues

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestGroupLabel(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{-1, ""},
	}
	for _, tc := range cases {
		if got := GroupLabel(tc.index); got != tc.want {
			t.Fatalf("GroupLabel(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}
}

func TestDrawGroupsDealsEveryParticipantOnce(t *testing.T) {
	participants := makeParticipants(10)
	groups, err := DrawGroups(participants, 4, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	seen := make(map[int64]bool)
	for i, group := range groups {
		if group.Label != GroupLabel(i) {
			t.Fatalf("group %d labelled %q", i, group.Label)
		}
		if group.Order != i+1 {
			t.Fatalf("group %d has order %d", i, group.Order)
		}
		if group.Name() != "Group "+group.Label {
			t.Fatalf("unexpected name %q", group.Name())
		}
		for _, member := range group.Members {
			if seen[member.ID] {
				t.Fatalf("participant %d drawn twice", member.ID)
			}
			seen[member.ID] = true
		}
	}
	if len(seen) != len(participants) {
		t.Fatalf("expected %d participants drawn, got %d", len(participants), len(seen))
	}

	// 10 dealt into 3 groups: 4, 3, 3
	sizes := []int{len(groups[0].Members), len(groups[1].Members), len(groups[2].Members)}
	if sizes[0] != 4 || sizes[1] != 3 || sizes[2] != 3 {
		t.Fatalf("unexpected group sizes %v", sizes)
	}
}

func TestDrawGroupsIsDeterministicForSeed(t *testing.T) {
	participants := makeParticipants(8)
	first, err := DrawGroups(participants, 4, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	second, err := DrawGroups(participants, 4, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	for g := range first {
		for m := range first[g].Members {
			if first[g].Members[m] != second[g].Members[m] {
				t.Fatalf("draws differ at group %d member %d", g, m)
			}
		}
	}
	for i, p := range participants {
		if p.ID != int64(i+1) {
			t.Fatalf("input participants were reordered")
		}
	}
}

func TestDrawGroupsNilRNG(t *testing.T) {
	groups, err := DrawGroups(makeParticipants(5), 5, nil)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Members) != 5 {
		t.Fatalf("expected a single full group, got %+v", groups)
	}
}

func TestDrawGroupsRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name         string
		participants []Participant
		size         int
		want         error
	}{
		{name: "zero size", participants: makeParticipants(4), size: 0, want: ErrInvalidGroupSize},
		{name: "negative size", participants: makeParticipants(4), size: -2, want: ErrInvalidGroupSize},
		{name: "no participants", participants: nil, size: 4, want: ErrNoParticipants},
		{
			name:         "duplicate",
			participants: []Participant{{ID: 3}, {ID: 3}},
			size:         2,
			want:         ErrDuplicateParticipant,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DrawGroups(tt.participants, tt.size, nil); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateManualAssignment(t *testing.T) {
	tests := []struct {
		name   string
		groups []ManualGroup
		want   error
	}{
		{
			name: "valid",
			groups: []ManualGroup{
				{Name: "Group A", ParticipantIDs: []int64{1, 2}},
				{Name: "Group B", ParticipantIDs: []int64{3}},
			},
		},
		{
			name:   "missing name",
			groups: []ManualGroup{{Name: "  ", ParticipantIDs: []int64{1}}},
			want:   ErrEmptyGroupName,
		},
		{
			name:   "empty group",
			groups: []ManualGroup{{Name: "Group A"}},
			want:   ErrEmptyGroup,
		},
		{
			name: "participant in two groups",
			groups: []ManualGroup{
				{Name: "Group A", ParticipantIDs: []int64{1, 2}},
				{Name: "Group B", ParticipantIDs: []int64{2}},
			},
			want: ErrAlreadyGrouped,
		},
		{
			name:   "participant twice in one group",
			groups: []ManualGroup{{Name: "Group A", ParticipantIDs: []int64{4, 4}}},
			want:   ErrDuplicateParticipant,
		},
		{
			name: "duplicate name",
			groups: []ManualGroup{
				{Name: "Group A", ParticipantIDs: []int64{1}},
				{Name: "group a", ParticipantIDs: []int64{2}},
			},
			want: ErrDuplicateGroupName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManualAssignment(tt.groups)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected valid assignment, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
