package domain

import "testing"

func TestReviewQuality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		quality ReviewQuality
		valid   bool
		pass    bool
		name    string
	}{
		{quality: 0, valid: false, pass: false, name: "quality(0)"},
		{quality: QualityAgain, valid: true, pass: false, name: "again"},
		{quality: QualityHard, valid: true, pass: false, name: "hard"},
		{quality: QualityGood, valid: true, pass: true, name: "good"},
		{quality: QualityEasy, valid: true, pass: true, name: "easy"},
		{quality: 5, valid: false, pass: true, name: "quality(5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quality.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
			if got := tt.quality.IsPass(); got != tt.pass {
				t.Errorf("IsPass() = %v, want %v", got, tt.pass)
			}
			if got := tt.quality.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
}
