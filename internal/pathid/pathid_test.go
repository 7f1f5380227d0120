package pathid

import (
	"errors"
	"strings"
	"testing"
)

const itemPrefix = "/api/v1/items/"

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    int64
		wantErr bool
	}{
		{name: "single digit", path: "/api/v1/items/3", want: 3},
		{name: "multi digit", path: "/api/v1/items/42", want: 42},
		{name: "leading zeros", path: "/api/v1/items/007", want: 7},
		{name: "max int64", path: "/api/v1/items/9223372036854775807", want: 9223372036854775807},
		{name: "letters", path: "/api/v1/items/abc", wantErr: true},
		{name: "negative", path: "/api/v1/items/-1", wantErr: true},
		{name: "explicit plus", path: "/api/v1/items/+5", wantErr: true},
		{name: "overflow", path: "/api/v1/items/99999999999999999999", wantErr: true},
		{name: "int64 plus one", path: "/api/v1/items/9223372036854775808", wantErr: true},
		{name: "zero", path: "/api/v1/items/0", wantErr: true},
		{name: "empty remainder", path: "/api/v1/items/", wantErr: true},
		{name: "trailing letters", path: "/api/v1/items/12abc", wantErr: true},
		{name: "leading space", path: "/api/v1/items/ 12", wantErr: true},
		{name: "inner space", path: "/api/v1/items/1 2", wantErr: true},
		{name: "trailing slash", path: "/api/v1/items/12/", wantErr: true},
		{name: "nested segment", path: "/api/v1/items/12/parts", wantErr: true},
		{name: "decimal", path: "/api/v1/items/1.5", wantErr: true},
		{name: "hex", path: "/api/v1/items/0x1f", wantErr: true},
		{name: "percent encoded digit", path: "/api/v1/items/%31", wantErr: true},
		{name: "wrong prefix", path: "/api/v2/items/3", wantErr: true},
		{name: "collection path", path: "/api/v1/items", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got, err := Extract(tt.path, itemPrefix)

			// Assert
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Fatalf("Extract(%q) error = %v, want %v", tt.path, err, ErrInvalidID)
				}
				var idErr *InvalidIDError
				if !errors.As(err, &idErr) {
					t.Fatalf("Extract(%q) error is not *InvalidIDError: %v", tt.path, err)
				}
				if idErr.Path != tt.path {
					t.Errorf("Path = %q, want %q", idErr.Path, tt.path)
				}
				if idErr.Reason == "" {
					t.Error("Reason is empty")
				}
				if got != 0 {
					t.Errorf("Extract(%q) = %d, want 0", tt.path, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("Extract(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %d, want %d", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtract_Deterministic(t *testing.T) {
	for range 3 {
		id, err := Extract("/api/v1/items/15", itemPrefix)
		if err != nil {
			t.Fatalf("Extract() unexpected error: %v", err)
		}
		if id != 15 {
			t.Errorf("Extract() = %d, want 15", id)
		}
	}
}

func TestInvalidIDError_Error(t *testing.T) {
	err := &InvalidIDError{Path: "/api/v1/items/x", Reason: "unexpected character 'x'"}

	msg := err.Error()
	if !strings.Contains(msg, "/api/v1/items/x") || !strings.Contains(msg, "unexpected character") {
		t.Errorf("Error() = %q, want path and reason", msg)
	}
}
