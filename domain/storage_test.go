package domain

import (
	"testing"
	"time"
)

func TestItemAccessors(t *testing.T) {
	issued := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	it := Item{
		"id":                      "abc",
		"email":                   "test@example.com",
		"passwordResetToken":      nil,
		"passwordResetIssuedAt":   issued,
		"passwordResetRedeemedAt": &issued,
		"stringTime":              "2026-03-14T12:00:00Z",
		"count":                   3,
	}

	if it.ID() != "abc" {
		t.Errorf("unexpected id %q", it.ID())
	}
	if it.String("email") != "test@example.com" {
		t.Errorf("unexpected email %q", it.String("email"))
	}
	if it.String("passwordResetToken") != "" {
		t.Error("nil field should read as empty string")
	}
	if it.String("missing") != "" {
		t.Error("missing field should read as empty string")
	}
	if it.String("count") != "" {
		t.Error("non-string field should read as empty string")
	}

	if got := it.Time("passwordResetIssuedAt"); got == nil || !got.Equal(issued) {
		t.Errorf("unexpected time %v", got)
	}
	if got := it.Time("passwordResetRedeemedAt"); got == nil || !got.Equal(issued) {
		t.Errorf("unexpected pointer time %v", got)
	}
	if got := it.Time("stringTime"); got == nil || !got.Equal(issued) {
		t.Errorf("unexpected string time %v", got)
	}
	if it.Time("passwordResetToken") != nil {
		t.Error("nil field should read as nil time")
	}
	if it.Time("email") != nil {
		t.Error("unparseable field should read as nil time")
	}
}
