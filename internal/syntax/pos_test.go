package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{"line 10 col 5", NewPos(10, 5), "10:5"},
		{"line 1 col 1", NewPos(1, 1), "1:1"},
		{"zero value", Pos{}, "0:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.wantStr {
				t.Errorf("Pos.String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   Pos
		valid bool
	}{
		{"valid position", NewPos(1, 1), true},
		{"valid position line 100", NewPos(100, 50), true},
		{"invalid - zero line", NewPos(0, 1), false},
		{"invalid - zero value", Pos{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.valid {
				t.Errorf("Pos.IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPosGetters(t *testing.T) {
	pos := NewPos(42, 13)

	if got := pos.Line(); got != 42 {
		t.Errorf("Pos.Line() = %d, want 42", got)
	}
	if got := pos.Col(); got != 13 {
		t.Errorf("Pos.Col() = %d, want 13", got)
	}
}
