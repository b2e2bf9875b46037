// internal/domain/customer/identity.go
package customer

import (
	"strings"
	"time"

	"decora-admin/internal/domain/pipeline"
)

// Key is the canonical identity of a human or household. It is derived
// deterministically from a raw record: stored canonical key first, then
// normalized e-mail, then digits-only phone. An empty Key means the
// record carries no contact field at all and cannot be aggregated.
type Key string

// DeriveKey computes the canonical key for a raw record. The derivation
// is a pure, total function of its three inputs and is stable across
// repeated calls; the same contact data always lands in the same bucket
// regardless of which raw record the operator is looking at.
func DeriveKey(storedKey, email, phone string) Key {
	if k := strings.TrimSpace(storedKey); k != "" {
		if strings.Contains(k, "@") {
			return Key(strings.ToLower(k))
		}
		if d := digitsOnly(k); d != "" {
			return Key(d)
		}
	}
	if e := strings.ToLower(strings.TrimSpace(email)); e != "" {
		return Key(e)
	}
	if d := digitsOnly(phone); d != "" {
		return Key(d)
	}
	return ""
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// Record is the flattened view of a visit or enquiry that identity
// resolution operates on. Scheduled is true for confirmed visits only;
// enquiries never increment an aggregate's booking counter.
type Record struct {
	RecordID  string
	StoredKey string
	FullName  string
	Phone     string
	Email     string
	City      string
	Service   string
	Status    pipeline.Status
	Recency   time.Time
	Scheduled bool
}

// Key derives the record's canonical identity key.
func (r Record) Key() Key {
	return DeriveKey(r.StoredKey, r.Email, r.Phone)
}

// CompareRecency orders two records by their start/creation instant.
// It returns -1 when a is older than b, +1 when newer, 0 on a tie.
// This is the single recency contract the merge relies on, so the
// algorithm stays independent of field names.
func CompareRecency(a, b Record) int {
	switch {
	case a.Recency.Before(b.Recency):
		return -1
	case a.Recency.After(b.Recency):
		return 1
	}
	return 0
}
