package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversationWritable(t *testing.T) {
	participants := []string{"owner-user", "prov-user"}

	tests := []struct {
		name     string
		state    PetitionState
		winner   string
		writable bool
	}{
		{"published is open", PublishedPetition, "", true},
		{"adjudicated with winner in conversation", AdjudicatedPetition, "prov-user", true},
		{"adjudicated with winner elsewhere", AdjudicatedPetition, "other-user", false},
		{"adjudicated without winner", AdjudicatedPetition, "", false},
		{"finalized is closed", FinalizedPetition, "prov-user", false},
		{"cancelled is closed", CancelledPetition, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.writable, ConversationWritable(tt.state, tt.winner, participants))
		})
	}
}
