package model

import (
	"errors"
	"testing"
)

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		wantErr error
	}{
		{
			name: "valid two options",
			options: []Option{
				{Text: "a", IsCorrect: true},
				{Text: "b"},
			},
			wantErr: nil,
		},
		{
			name: "multiple correct options allowed",
			options: []Option{
				{Text: "a", IsCorrect: true},
				{Text: "b", IsCorrect: true},
				{Text: "c"},
			},
			wantErr: nil,
		},
		{
			name:    "single option rejected",
			options: []Option{{Text: "a", IsCorrect: true}},
			wantErr: ErrTooFewOptions,
		},
		{
			name:    "empty options rejected",
			options: nil,
			wantErr: ErrTooFewOptions,
		},
		{
			name: "no correct option rejected",
			options: []Option{
				{Text: "a"},
				{Text: "b"},
			},
			wantErr: ErrNoCorrectOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOptions(tt.options)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateOptions() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCorrectFlags(t *testing.T) {
	q := &Question{
		Options: []Option{
			{Text: "a"},
			{Text: "b", IsCorrect: true},
			{Text: "c"},
			{Text: "d", IsCorrect: true},
		},
	}

	flags := q.CorrectFlags()
	want := []bool{false, true, false, true}
	if len(flags) != len(want) {
		t.Fatalf("got %d flags, want %d", len(flags), len(want))
	}
	for i := range want {
		if flags[i] != want[i] {
			t.Errorf("flag[%d] = %v, want %v", i, flags[i], want[i])
		}
	}
}

func TestCanTakeTests(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"approved user", User{Role: RoleUser, IsApproved: true}, true},
		{"unapproved user", User{Role: RoleUser, IsApproved: false}, false},
		{"admin implicitly approved", User{Role: RoleAdmin, IsApproved: false}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.CanTakeTests(); got != tt.want {
				t.Errorf("CanTakeTests() = %v, want %v", got, tt.want)
			}
		})
	}
}
