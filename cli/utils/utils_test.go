package utils

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestParseHTTPError(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Body:       io.NopCloser(strings.NewReader("Asset not found")),
	}

	err := ParseHTTPError(resp)
	if err == nil {
		t.Fatal("Expected an error for a non-OK response")
	}

	if !strings.Contains(err.Error(), "404") ||
		!strings.Contains(err.Error(), "Asset not found") {
		t.Fatalf("Error is missing status or body: %v", err)
	}
}

func TestParseHTTPErrorEmptyBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusForbidden,
		Status:     "403 Forbidden",
		Body:       io.NopCloser(strings.NewReader("")),
	}

	err := ParseHTTPError(resp)
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("Error is missing status code: %v", err)
	}
}

func TestGenerateTitle(t *testing.T) {
	title := GenerateTitle("Shards")
	if !strings.Contains(title, "ShardVault") || !strings.Contains(title, "Shards") {
		t.Fatalf("Unexpected title: %s", title)
	}
}

func TestParseTimestamp(t *testing.T) {
	ts := ParseTimestamp("2024-06-02T15:04:05Z")
	if ts.IsZero() {
		t.Fatal("Valid timestamp parsed as zero time")
	}

	if !ts.Equal(time.Date(2024, 6, 2, 15, 4, 5, 0, time.UTC)) {
		t.Fatalf("Unexpected parsed time: %v", ts)
	}

	if !ParseTimestamp("not a timestamp").IsZero() {
		t.Fatal("Invalid timestamp should parse as zero time")
	}
}

func TestListIdxSpacing(t *testing.T) {
	spacing := GenerateListIdxSpacing(100)
	if len(spacing) != 2 {
		t.Fatalf("Unexpected initial spacing length\n"+
			"(expected: %d, got: %d)", 2, len(spacing))
	}

	if len(GetListIdxSpacing(spacing, 9, 100)) != 2 {
		t.Fatal("Single digit index should keep full spacing")
	}

	if len(GetListIdxSpacing(spacing, 10, 100)) != 1 {
		t.Fatal("Two digit index should shrink spacing by one")
	}

	if len(GetListIdxSpacing(spacing, 100, 100)) != 0 {
		t.Fatal("Full width index should remove spacing")
	}
}

func TestStrFlag(t *testing.T) {
	var value string
	StrFlag(&value, "path", "/fallback", []string{"unlock", "-p", "/custom"})
	if value != "/custom" {
		t.Fatalf("Short flag not parsed: %s", value)
	}

	value = ""
	StrFlag(&value, "path", "/fallback", []string{"unlock", "--path", "/other"})
	if value != "/other" {
		t.Fatalf("Long flag not parsed: %s", value)
	}

	value = ""
	StrFlag(&value, "path", "/fallback", []string{"unlock"})
	if value != "/fallback" {
		t.Fatalf("Fallback not applied: %s", value)
	}

	value = ""
	StrFlag(&value, "path", "/fallback", []string{"unlock", "-p"})
	if value != "" {
		t.Fatalf("Trailing flag with no value should leave var unset: %s", value)
	}
}

func TestBoolFlag(t *testing.T) {
	var value bool
	BoolFlag(&value, "list", false, []string{"shards", "--list"})
	if !value {
		t.Fatal("Long bool flag not parsed")
	}

	value = false
	BoolFlag(&value, "list", false, []string{"shards", "-l"})
	if !value {
		t.Fatal("Short bool flag not parsed")
	}

	value = false
	BoolFlag(&value, "list", false, []string{"shards"})
	if value {
		t.Fatal("Fallback should be false")
	}
}
