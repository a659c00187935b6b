package main

import (
	"errors"
	"testing"
	"time"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/models"
)

func TestShortIDAndTruncate(t *testing.T) {
	if got := shortID("0190a5b2-7c1e-7abc-9def-0123456789ab"); got != "456789ab" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID(short) = %q", got)
	}
	if got := truncate("héllo wörld", 8); got != "héllo..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestFindTask(t *testing.T) {
	tasks := []models.Task{
		{ID: "0190a5b2-0000-7000-8000-aaaaaaaa1111", Title: "one"},
		{ID: "0190a5b2-0000-7000-8000-bbbbbbbb2222", Title: "two"},
	}

	got, err := findTask(tasks, "bbbb2222")
	if err != nil || got.Title != "two" {
		t.Fatalf("findTask by suffix = %v, %v", got, err)
	}
	got, err = findTask(tasks, tasks[0].ID)
	if err != nil || got.Title != "one" {
		t.Fatalf("findTask by full id = %v, %v", got, err)
	}
	if _, err := findTask(tasks, "0190a5b2"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("ambiguous prefix: got %v", err)
	}
	if _, err := findTask(tasks, "nope"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("missing id: got %v", err)
	}
}

func TestParseWhen(t *testing.T) {
	got, err := parseWhen("2024-05-10 14:30")
	if err != nil {
		t.Fatalf("parseWhen failed: %v", err)
	}
	want := time.Date(2024, 5, 10, 14, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("parseWhen = %v, want %v", got, want)
	}

	got, err = parseWhen("2024-05-10T14:30:00Z")
	if err != nil || !got.Equal(time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("parseWhen(RFC 3339) = %v, %v", got, err)
	}

	if _, err := parseWhen("next tuesday"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}
