package dedup

import (
	"testing"
	"time"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

func incident(id string) domain.IncidentRecord {
	return domain.IncidentRecord{
		ID:              id,
		RespondingUnits: []string{"P314"},
		PrimaryLocation: "YONGE ST",
		EventType:       "Medical",
		AlarmLevel:      "0",
		DispatchTime:    time.Date(2024, time.February, 28, 10, 0, 0, 0, time.UTC),
	}
}

func ids(records []domain.IncidentRecord) []string {
	return domain.IncidentIDs(records)
}

func TestSelectNew(t *testing.T) {
	marked := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		candidates []domain.IncidentRecord
		seen       domain.SeenIncidentSet
		want       []string
	}{
		{
			name:       "bootstrap returns every candidate in order",
			candidates: []domain.IncidentRecord{incident("A"), incident("B")},
			seen:       domain.NewSeenIncidentSet(),
			want:       []string{"A", "B"},
		},
		{
			name:       "nil seen set behaves as bootstrap",
			candidates: []domain.IncidentRecord{incident("A")},
			seen:       nil,
			want:       []string{"A"},
		},
		{
			name:       "only unseen ids are returned",
			candidates: []domain.IncidentRecord{incident("101"), incident("102")},
			seen:       domain.SeenIncidentSet{"101": marked},
			want:       []string{"102"},
		},
		{
			name:       "order of the batch is preserved",
			candidates: []domain.IncidentRecord{incident("3"), incident("1"), incident("2")},
			seen:       domain.SeenIncidentSet{"1": marked},
			want:       []string{"3", "2"},
		},
		{
			name:       "fully seen batch is empty",
			candidates: []domain.IncidentRecord{incident("1"), incident("2")},
			seen:       domain.SeenIncidentSet{"1": marked, "2": marked},
			want:       []string{},
		},
		{
			name:       "empty batch is empty",
			candidates: nil,
			seen:       domain.SeenIncidentSet{"1": marked},
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(SelectNew(tt.candidates, tt.seen))

			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSelectNew_DoesNotMutateSeen(t *testing.T) {
	seen := domain.SeenIncidentSet{"101": time.Now()}

	_ = SelectNew([]domain.IncidentRecord{incident("101"), incident("102")}, seen)

	if seen.Len() != 1 || !seen.Has("101") {
		t.Errorf("seen set was modified: %v", seen)
	}
}

func TestSelectNew_Idempotent(t *testing.T) {
	candidates := []domain.IncidentRecord{incident("7"), incident("8")}
	seen := domain.NewSeenIncidentSet()

	first := SelectNew(candidates, seen)
	if len(first) != 2 {
		t.Fatalf("first call: got %d, want 2", len(first))
	}

	seen = seen.With(domain.IncidentIDs(first), time.Now())

	if second := SelectNew(candidates, seen); len(second) != 0 {
		t.Errorf("second call: got %v, want empty", ids(second))
	}
}
