package mess

import (
	"errors"
	"testing"
	"time"
)

func TestParseVote(t *testing.T) {
	tests := []struct {
		in   string
		want Vote
	}{
		{"0", Good},
		{"1", Average},
		{"2", Poor},
		{" 2\n", Poor},
		{"GOOD", Good},
		{"avg", Average},
		{"Average", Average},
		{"poor", Poor},
	}
	for _, tt := range tests {
		got, err := ParseVote(tt.in)
		if err != nil {
			t.Errorf("ParseVote(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVote(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "3", "-1", "great", "0 1"} {
		if _, err := ParseVote(in); !errors.Is(err, ErrInvalidVote) {
			t.Errorf("ParseVote(%q): got %v, want ErrInvalidVote", in, err)
		}
	}
}

func TestVoteIndex(t *testing.T) {
	for i, v := range Votes {
		if v.Index() != i {
			t.Errorf("%v.Index() = %d, want %d", v, v.Index(), i)
		}
		if !v.Valid() {
			t.Errorf("%v should be valid", v)
		}
	}
	if Vote(3).Valid() || Vote(-1).Valid() {
		t.Error("out of range votes reported valid")
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
	}{
		{"2024-01-01", time.Monday},
		{"2024-02-29", time.Thursday},
		{"2024-03-10", time.Sunday},
		{"saturday", time.Saturday},
		{"FRIDAY", time.Friday},
	}
	for _, tt := range tests {
		got, err := ParseDay(tt.in)
		if err != nil {
			t.Errorf("ParseDay(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDay(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "2023-02-29", "01/01/2024", "someday"} {
		if _, err := ParseDay(in); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDay(%q): got %v, want ErrInvalidDate", in, err)
		}
	}
}
