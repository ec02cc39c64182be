package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGroupSlug(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"Valid", "good-music", false},
		{"Valid with digits", "club-2049", false},
		{"Too Short", "ab", true},
		{"Uppercase", "GoodMusic", true},
		{"Spaces", "good music", true},
		{"Leading hyphen", "-music", true},
		{"Trailing hyphen", "music-", true},
		{"Reserved", "feed", true},
		{"Reserved admin", "admin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateGroupSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
