package customer

import (
	"math/rand"
	"testing"
	"time"

	"decora-admin/internal/domain/pipeline"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name      string
		storedKey string
		email     string
		phone     string
		want      Key
	}{
		{"stored email key lowercased", "Ana@Example.COM", "", "", "ana@example.com"},
		{"stored phone key digits only", "+34 600-11-22-33", "", "", "34600112233"},
		{"email preferred over phone", "", "Luis@Example.com ", "600111222", "luis@example.com"},
		{"phone digits only", "", "", "34 600 11 22 33", "34600112233"},
		{"phone with plus prefix", "", "", "+34600112233", "34600112233"},
		{"no contact fields", "", "", "", ""},
		{"stored key without digits falls through", "n/a", "carmen@casa.es", "", "carmen@casa.es"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveKey(tt.storedKey, tt.email, tt.phone)
			if got != tt.want {
				t.Errorf("DeriveKey(%q, %q, %q) = %q, want %q", tt.storedKey, tt.email, tt.phone, got, tt.want)
			}
			// Stable across repeated derivation.
			if again := DeriveKey(tt.storedKey, tt.email, tt.phone); again != got {
				t.Errorf("DeriveKey not stable: %q then %q", got, again)
			}
		})
	}
}

func TestDeriveKeyEquivalentPhones(t *testing.T) {
	a := DeriveKey("", "", "34 600 11 22 33")
	b := DeriveKey("", "", "+34600112233")
	if a != b || a != "34600112233" {
		t.Errorf("equivalent phones resolved to %q and %q, want 34600112233", a, b)
	}
}

func TestMergeLatestWins(t *testing.T) {
	older := Record{
		RecordID: "v1", Phone: "600111222", FullName: "Marta Vidal",
		City: "Valencia", Service: "Reforma integral",
		Status: pipeline.StatusQuoted, Recency: time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local),
		Scheduled: true,
	}
	newer := Record{
		RecordID: "e1", Phone: "600 111 222", FullName: "Marta Vidal Pons",
		City: "Valencia", Service: "Reforma integral",
		Status: pipeline.StatusInProgress, Recency: time.Date(2024, 6, 12, 9, 30, 0, 0, time.Local),
	}

	for _, order := range [][]Record{{older, newer}, {newer, older}} {
		aggs, unresolved := Merge(order)
		if len(unresolved) != 0 {
			t.Fatalf("unexpected unresolved records: %v", unresolved)
		}
		if len(aggs) != 1 {
			t.Fatalf("got %d aggregates, want 1", len(aggs))
		}
		agg := aggs["600111222"]
		if agg == nil {
			t.Fatalf("missing aggregate for 600111222, got keys %v", keysOf(aggs))
		}
		if agg.FullName != "Marta Vidal Pons" {
			t.Errorf("FullName = %q, want newer record's name", agg.FullName)
		}
		if agg.LastStatus != pipeline.StatusInProgress {
			t.Errorf("LastStatus = %q, want in_progress", agg.LastStatus)
		}
		if !agg.LastSeen.Equal(newer.Recency) {
			t.Errorf("LastSeen = %v, want %v", agg.LastSeen, newer.Recency)
		}
		if agg.City != "Valencia" || agg.LastService != "Reforma integral" {
			t.Errorf("denormalized fields = city %q service %q, want newer record's", agg.City, agg.LastService)
		}
		if agg.BookingsCount != 1 {
			t.Errorf("BookingsCount = %d, want 1 (enquiries do not count)", agg.BookingsCount)
		}
	}
}

func TestMergeOrderIndependent(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	records := []Record{
		{RecordID: "a", Phone: "611111111", FullName: "A", Status: pipeline.StatusNew, Recency: base, Scheduled: true},
		{RecordID: "b", Phone: "611111111", FullName: "B", Status: pipeline.StatusQuoted, Recency: base.Add(24 * time.Hour), Scheduled: true},
		{RecordID: "c", Email: "c@casa.es", FullName: "C", Status: pipeline.StatusNew, Recency: base.Add(time.Hour)},
		{RecordID: "d", Email: "C@CASA.es", FullName: "D", Status: pipeline.StatusCompleted, Recency: base.Add(48 * time.Hour), Scheduled: true},
		{RecordID: "e", FullName: "no contact", Recency: base},
	}

	reference, refUnresolved := Merge(records)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		shuffled := make([]Record, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, unresolved := Merge(shuffled)
		if len(unresolved) != len(refUnresolved) {
			t.Fatalf("unresolved count changed under shuffle: %d vs %d", len(unresolved), len(refUnresolved))
		}
		if len(got) != len(reference) {
			t.Fatalf("aggregate count changed under shuffle: %d vs %d", len(got), len(reference))
		}
		for key, want := range reference {
			g := got[key]
			if g == nil {
				t.Fatalf("key %q missing after shuffle", key)
			}
			if g.FullName != want.FullName || g.LastStatus != want.LastStatus ||
				!g.LastSeen.Equal(want.LastSeen) || g.BookingsCount != want.BookingsCount {
				t.Errorf("aggregate %q diverged under shuffle: got %+v, want %+v", key, g, want)
			}
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	records := []Record{
		{RecordID: "a", Phone: "622222222", FullName: "Ana", Status: pipeline.StatusNew, Recency: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local), Scheduled: true},
	}
	first, _ := Merge(records)
	second, _ := Merge(records)
	if len(first) != len(second) {
		t.Fatalf("merge not idempotent: %d vs %d aggregates", len(first), len(second))
	}
	if *first["622222222"] != *second["622222222"] {
		t.Errorf("merge not idempotent: %+v vs %+v", first["622222222"], second["622222222"])
	}
}

func TestMergeVisitPlusLaterEnquiry(t *testing.T) {
	visit := Record{
		RecordID: "v1", Phone: "600111222", FullName: "Pep Soler",
		Status:    pipeline.StatusNew,
		Recency:   time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local),
		Scheduled: true,
	}
	enquiry := Record{
		RecordID: "e1", Phone: "600111222",
		Status:  pipeline.StatusQuoted,
		Recency: time.Date(2024, 6, 11, 18, 0, 0, 0, time.Local),
	}

	aggs, _ := Merge([]Record{visit, enquiry})
	if len(aggs) != 1 {
		t.Fatalf("got %d aggregates, want 1", len(aggs))
	}
	agg := aggs["600111222"]
	if agg.BookingsCount != 1 {
		t.Errorf("BookingsCount = %d, want 1", agg.BookingsCount)
	}
	if agg.LastStatus != pipeline.StatusQuoted {
		t.Errorf("LastStatus = %q, want the later enquiry's status", agg.LastStatus)
	}
}

func TestMergePartition(t *testing.T) {
	base := time.Date(2024, 4, 2, 10, 0, 0, 0, time.Local)
	records := []Record{
		{RecordID: "1", Phone: "633333333", Recency: base, Scheduled: true},
		{RecordID: "2", Phone: "633 333 333", Recency: base.Add(time.Hour), Scheduled: true},
		{RecordID: "3", Email: "otro@casa.es", Recency: base, Scheduled: true},
	}
	aggs, unresolved := Merge(records)

	total := len(unresolved)
	for _, a := range aggs {
		total += a.BookingsCount
	}
	if total != len(records) {
		t.Errorf("partition violated: %d records accounted for, want %d", total, len(records))
	}
	if aggs["633333333"].BookingsCount != 2 {
		t.Errorf("group count = %d, want 2", aggs["633333333"].BookingsCount)
	}
}

func TestMergeTieGoesToLaterRecord(t *testing.T) {
	instant := time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local)
	first := Record{RecordID: "v1", Phone: "600111222", FullName: "Primero", Status: pipeline.StatusNew, Recency: instant, Scheduled: true}
	second := Record{RecordID: "v2", Phone: "600111222", FullName: "Segundo", Status: pipeline.StatusQuoted, Recency: instant, Scheduled: true}

	aggs, _ := Merge([]Record{first, second})
	if agg := aggs["600111222"]; agg.FullName != "Segundo" || agg.LastStatus != pipeline.StatusQuoted {
		t.Errorf("tie not resolved to later record: %+v", agg)
	}

	aggs, _ = Merge([]Record{second, first})
	if agg := aggs["600111222"]; agg.FullName != "Primero" || agg.LastStatus != pipeline.StatusNew {
		t.Errorf("tie not resolved to later record: %+v", agg)
	}
}

func TestCompareRecency(t *testing.T) {
	a := Record{Recency: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)}
	b := Record{Recency: time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)}
	if CompareRecency(a, b) != -1 || CompareRecency(b, a) != 1 || CompareRecency(a, a) != 0 {
		t.Errorf("CompareRecency ordering wrong: %d %d %d", CompareRecency(a, b), CompareRecency(b, a), CompareRecency(a, a))
	}
}

func keysOf(m map[Key]*Aggregate) []Key {
	out := make([]Key, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
