package lib

import "testing"

func TestValidateEntityName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "drone1"},
		{name: "hyphen_underscore", input: "scout-drone_2"},
		{name: "empty", input: "", wantErr: true},
		{name: "leading_digit", input: "1drone", wantErr: true},
		{name: "spaces", input: "drone one", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntityName(tt.input)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateWorldName(t *testing.T) {
	if err := ValidateWorldName("plains_world"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateWorldName("/world/x"); err == nil {
		t.Fatalf("expected error for slashed world")
	}
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "integer", input: "0"},
		{name: "negative", input: "-12"},
		{name: "decimal", input: "2.5"},
		{name: "leading_dot", input: ".25"},
		{name: "trailing_dot", input: "3."},
		{name: "explicit_plus", input: "+4.0"},
		{name: "word", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "double_dot", input: "1.2.3", wantErr: true},
		{name: "exponent", input: "1e3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate("x", tt.input)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
