// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package ratings

import (
	"reflect"
	"testing"
)

func testObservations() []Rating {
	return []Rating{
		{UserID: 2, MovieID: 30, Value: 5},
		{UserID: 1, MovieID: 10, Value: 5},
		{UserID: 1, MovieID: 20, Value: 3},
		{UserID: 2, MovieID: 20, Value: 4},
	}
}

func TestStoreIndexes(t *testing.T) {
	s := NewStore(testObservations())

	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if got, want := s.MovieIDs(), []int{10, 20, 30}; !reflect.DeepEqual(got, want) {
		t.Errorf("MovieIDs() = %v, want %v", got, want)
	}
	if got, want := s.UserIDs(), []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("UserIDs() = %v, want %v", got, want)
	}
	if got := len(s.ByUser(1)); got != 2 {
		t.Errorf("len(ByUser(1)) = %d, want 2", got)
	}
	if s.ByUser(99) != nil {
		t.Error("ByUser(99) should be nil for unknown user")
	}
	if !s.HasUser(2) || s.HasUser(99) {
		t.Error("HasUser misreporting membership")
	}
}

func TestFingerprintStable(t *testing.T) {
	a := NewStore(testObservations())
	b := NewStore(testObservations())

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("equal observation sets hash differently: %x vs %x", a.Fingerprint(), b.Fingerprint())
	}
}

func TestFingerprintDistinguishesValues(t *testing.T) {
	base := testObservations()
	changed := testObservations()
	changed[0].Value = 1

	a := NewStore(base)
	b := NewStore(changed)
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("stores with different rating values should hash differently")
	}
}

func TestFingerprintIgnoresTimestamp(t *testing.T) {
	base := testObservations()
	stamped := testObservations()
	for i := range stamped {
		stamped[i].Timestamp = stamped[i].Timestamp.AddDate(1, 0, 0)
	}

	a := NewStore(base)
	b := NewStore(stamped)
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("timestamps must not affect the fingerprint")
	}
}

func TestEmptyStore(t *testing.T) {
	s := NewStore(nil)

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if len(s.MovieIDs()) != 0 || len(s.UserIDs()) != 0 {
		t.Error("empty store should have no movie or user IDs")
	}
}
