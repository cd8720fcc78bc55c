package dcat

import (
	"testing"
	"time"
)

func TestParseIssued(t *testing.T) {
	tests := []struct {
		raw     string
		display string
		offset  int
		wantErr bool
	}{
		{"Mon, 01 Jan 2024 10:00:00 GMT+0000", "01/01/2024 10:00", 0, false},
		{"Tue, 02 Jan 2024 10:00:00 GMT+0000", "02/01/2024 10:00", 0, false},
		{"Wed, 15 May 2019 23:45:10 CEST+0200", "15/05/2019 23:45", 7200, false},
		{"Fri, 3 Mar 2023 08:05:00 -0300", "03/03/2023 08:05", -10800, false},
		{"  Mon, 01 Jan 2024 10:00:00 UTC+0000  ", "01/01/2024 10:00", 0, false},
		{"not-a-date", "", 0, true},
		{"2024-01-01T10:00:00Z", "", 0, true},
		{"Mon, 01 Jan 2024 10:00:00 GMT", "", 0, true},
		{"Mon, 32 Jan 2024 10:00:00 GMT+0000", "", 0, true},
		{"Mon, 01 Jan 2024 10:00:00 GMT+2500", "", 0, true},
		{"", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseIssued(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s := got.Format(DisplayLayout); s != tt.display {
				t.Fatalf("display = %q, want %q", s, tt.display)
			}
			if _, off := got.Zone(); off != tt.offset {
				t.Fatalf("offset = %d, want %d", off, tt.offset)
			}
		})
	}
}

func TestParseIssued_KeepsInstant(t *testing.T) {
	a, err := ParseIssued("Mon, 01 Jan 2024 12:00:00 CET+0100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	if !a.Equal(want) {
		t.Fatalf("instant = %v, want %v", a.UTC(), want)
	}
}

func TestFormatIssued(t *testing.T) {
	if got := FormatIssued("Mon, 01 Jan 2024 10:00:00 GMT+0000"); got != "01/01/2024 10:00" {
		t.Fatalf("FormatIssued = %q", got)
	}
	if got := FormatIssued("not-a-date"); got != "not-a-date" {
		t.Fatalf("FormatIssued should pass through, got %q", got)
	}
}

func TestRecord_IssuedDisplay(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want string
	}{
		{"normalized", Normalize(map[string]any{"issued": "Tue, 2 Jan 2024 10:00:00 GMT+0000"}), "02/01/2024 10:00"},
		{"without parse flag", Record{Issued: "Tue, 2 Jan 2024 10:00:00 GMT+0000"}, "02/01/2024 10:00"},
		{"unparsable", Record{Issued: "2024-01-02"}, "2024-01-02"},
		{"empty", Record{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IssuedDisplay(); got != tt.want {
				t.Fatalf("IssuedDisplay() = %q, want %q", got, tt.want)
			}
		})
	}
}
