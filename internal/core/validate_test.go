package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"alice", "alice", nil},
		{"  bob  ", "bob", nil},
		{"ann marie", "ann marie", nil},
		{"<script>eve</script>", "scriptevescript", nil},
		{"", "", ErrInvalidName},
		{"!!!", "", ErrInvalidName},
		{"system", "", ErrInvalidName},
		{"SYSTEM", "", ErrInvalidName},
		{"sys&tem", "", ErrInvalidName},
		{strings.Repeat("a", DefaultMaxNameLen+1), "", ErrInvalidName},
	}

	for _, tc := range cases {
		got, err := ValidateName(tc.in, DefaultMaxNameLen)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("ValidateName(%q) error = %v, want %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("ValidateName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateMessage(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"hi", "hi", nil},
		{"  spaced out  ", "spaced out", nil},
		{strings.Repeat("x", DefaultMaxMessageLen), strings.Repeat("x", DefaultMaxMessageLen), nil},
		{"", "", ErrEmptyMessage},
		{"   ", "", ErrEmptyMessage},
		{strings.Repeat("x", DefaultMaxMessageLen+1), "", ErrMessageTooLong},
	}

	for _, tc := range cases {
		got, err := ValidateMessage(tc.in, DefaultMaxMessageLen)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("ValidateMessage(%q) error = %v, want %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("ValidateMessage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
