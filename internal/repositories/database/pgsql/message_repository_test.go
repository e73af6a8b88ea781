package pgsql

import (
	"fmt"
	"testing"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/models"
	"github.com/stretchr/testify/require"
)

// newestFirstRows builds rows the way the page query returns them, highest
// sequence first.
func newestFirstRows(sequences ...int64) []models.Message {
	rows := make([]models.Message, len(sequences))
	for i, seq := range sequences {
		rows[i] = models.Message{
			MessageID:      fmt.Sprintf("msg-%d", seq),
			ConversationID: "conv-1",
			SenderID:       "emp-1",
			Content:        fmt.Sprintf("message %d", seq),
			Sequence:       seq,
			SentAt:         time.Now().UTC(),
		}
	}
	return rows
}

func TestAscendingPage(t *testing.T) {
	tests := []struct {
		name         string
		rows         []models.Message
		wantSequence []int64
	}{
		{
			name:         "empty page",
			rows:         nil,
			wantSequence: []int64{},
		},
		{
			name:         "single message",
			rows:         newestFirstRows(7),
			wantSequence: []int64{7},
		},
		{
			name:         "full page flips ascending",
			rows:         newestFirstRows(5, 4, 3, 2, 1),
			wantSequence: []int64{1, 2, 3, 4, 5},
		},
		{
			name:         "sequence holes survive the flip",
			rows:         newestFirstRows(90, 42, 17),
			wantSequence: []int64{17, 42, 90},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := ascendingPage(tt.rows)
			require.Len(t, messages, len(tt.wantSequence))
			for i, want := range tt.wantSequence {
				require.Equal(t, want, messages[i].Sequence)
				require.Equal(t, fmt.Sprintf("msg-%d", want), messages[i].MessageID)
			}
		})
	}
}

// Two consecutive pages of take=N/2, concatenated deepest page first,
// rebuild the full ascending sequence with no gaps or duplicates.
func TestAscendingPage_ConsecutivePagesReconstructSequence(t *testing.T) {
	const total, take = 8, 4

	full := newestFirstRows(8, 7, 6, 5, 4, 3, 2, 1)
	newest := full[:take]      // skip=0
	older := full[take : 2*take] // skip=take

	rebuilt := append(ascendingPage(older), ascendingPage(newest)...)

	require.Len(t, rebuilt, total)
	seen := make(map[int64]bool, total)
	for i, m := range rebuilt {
		require.Equal(t, int64(i+1), m.Sequence)
		require.False(t, seen[m.Sequence])
		seen[m.Sequence] = true
	}
}
