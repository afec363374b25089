package dto

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		expectError bool
	}{
		{name: "plain integer", input: "1000", want: "1000"},
		{name: "zero", input: "0", want: "0"},
		{name: "negative passes through", input: "-5", want: "-5"},
		{name: "whitespace trimmed", input: " 42 ", want: "42"},
		{name: "huge value", input: "340282366920938463463374607431768211456", want: "340282366920938463463374607431768211456"},
		{name: "empty", input: "", expectError: true},
		{name: "decimal", input: "12.5", expectError: true},
		{name: "garbage", input: "abc", expectError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithdrawRequest_All(t *testing.T) {
	tests := []struct {
		shares string
		all    bool
	}{
		{"", true},
		{"all", true},
		{"ALL", true},
		{"100", false},
	}

	for _, tt := range tests {
		req := &WithdrawRequest{Account: "alice", Shares: tt.shares}
		if got := req.All(); got != tt.all {
			t.Fatalf("All() with shares=%q = %v, want %v", tt.shares, got, tt.all)
		}
	}
}
