package errors

import (
	"strings"
	"testing"
)

type sampleOptions struct {
	Order     int     `validate:"min=1,max=3"`
	RelaxRate float64 `validate:"gte=0,lte=1"`
	Scheme    string  `validate:"oneof=auto prezipped selected custom"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name     string
		opts     sampleOptions
		wantErr  bool
		contains string
	}{
		{"valid", sampleOptions{Order: 2, RelaxRate: 0.15, Scheme: "auto"}, false, ""},
		{"order too high", sampleOptions{Order: 4, RelaxRate: 0.15, Scheme: "auto"}, true, "Order must be at most 3"},
		{"order zero", sampleOptions{Order: 0, RelaxRate: 0.15, Scheme: "auto"}, true, "Order must be at least 1"},
		{"relax rate", sampleOptions{Order: 1, RelaxRate: 1.5, Scheme: "auto"}, true, "RelaxRate"},
		{"scheme", sampleOptions{Order: 1, Scheme: "other"}, true, "Scheme must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err, tt.contains)
			}
		})
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"12478", false},
		{"JFK", false},
		{"", true},
		{"A B", true},
		{"A\"B", true},
		{"A\tB", true},
	}

	for _, tt := range tests {
		err := ValidateNodeID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}
