package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	label63 := strings.Repeat("a", MaxLabelLength)

	// Four 63-character labels joined by dots are 255 characters.
	tooLong := strings.Join([]string{label63, label63, label63, label63}, ".")
	// 61+1+61+1+61+1+61+1+2+1+2 = 253 characters ending in an alphabetic TLD.
	label61 := strings.Repeat("b", 61)
	maxLength := strings.Join([]string{label61, label61, label61, label61, "cd", "ef"}, ".")

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple", input: "example.com"},
		{name: "subdomain", input: "api.v1.example.org"},
		{name: "uppercase", input: "EXAMPLE.COM"},
		{name: "digits and hyphens", input: "my-host-01.example.net"},
		{name: "single label tld", input: "localhost"},
		{name: "63 character label", input: label63 + ".com"},
		{name: "253 characters", input: maxLength},
		{name: "empty", input: "", wantErr: ErrEmpty},
		{name: "too long", input: tooLong + ".com", wantErr: ErrTooLong},
		{name: "leading dot", input: ".example.com", wantErr: ErrEmptyLabel},
		{name: "trailing dot", input: "example.com.", wantErr: ErrEmptyLabel},
		{name: "consecutive dots", input: "example..com", wantErr: ErrEmptyLabel},
		{name: "only a dot", input: ".", wantErr: ErrEmptyLabel},
		{name: "64 character label", input: label63 + "a.com", wantErr: ErrLabelTooLong},
		{name: "label starts with hyphen", input: "-example.com", wantErr: ErrLabelHyphen},
		{name: "label ends with hyphen", input: "example-.com", wantErr: ErrLabelHyphen},
		{name: "tld ends with hyphen", input: "example.co-", wantErr: ErrLabelHyphen},
		{name: "underscore", input: "my_host.example.com", wantErr: ErrLabelCharacter},
		{name: "space", input: "my host.com", wantErr: ErrLabelCharacter},
		{name: "non ascii", input: "bücher.de", wantErr: ErrLabelCharacter},
		{name: "one letter tld", input: "example.c", wantErr: ErrTLD},
		{name: "numeric tld", input: "192.168.0.1", wantErr: ErrTLD},
		{name: "tld with digit", input: "example.c0m", wantErr: ErrTLD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			err := Validate(tt.input)

			// Assert
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate(%q) unexpected error: %v", tt.input, err)
				}
				if !IsValid(tt.input) {
					t.Errorf("IsValid(%q) = false, want true", tt.input)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate(%q) error = %v, want it to wrap %v", tt.input, err, ErrInvalid)
			}
			if IsValid(tt.input) {
				t.Errorf("IsValid(%q) = true, want false", tt.input)
			}
		})
	}
}
