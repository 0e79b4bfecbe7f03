package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "scale", false},
		{"valid with dash", "my-node", false},
		{"valid with underscore", "my_node", false},
		{"valid leading underscore", "_tmp", false},
		{"valid with digits", "node2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"leading digit", "2node", true},
		{"dot", "a.b", true},
		{"space", "a b", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("node", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidName {
				t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestSplitPortRef(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantNode string
		wantPort string
		wantErr  bool
	}{
		{"valid", "scale.y", "scale", "y", false},
		{"valid underscores", "my_node.out_1", "my_node", "out_1", false},

		{"no dot", "scale", "", "", true},
		{"empty node", ".y", "", "", true},
		{"empty port", "scale.", "", "", true},
		{"nested", "a.b.c", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, port, err := SplitPortRef(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitPortRef(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if node != tt.wantNode || port != tt.wantPort {
				t.Errorf("SplitPortRef(%q) = (%q, %q), want (%q, %q)", tt.input, node, port, tt.wantNode, tt.wantPort)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "graphs/demo.toml", false},
		{"absolute", "/tmp/demo.toml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00.toml", true},
		{"newline", "foo\n.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
