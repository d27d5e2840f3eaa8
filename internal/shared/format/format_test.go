package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestILS(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{50000, "50,000 ₪"},
		{50401.4, "50,401 ₪"},
		{999.5, "1,000 ₪"},
		{0, "0 ₪"},
		{-1234.56, "-1,235 ₪"},
		{1234567.89, "1,234,568 ₪"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ILS(tt.in), "%v", tt.in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "+12.34%", Percent(12.3449))
	assert.Equal(t, "+0.00%", Percent(0))
	assert.Equal(t, "-3.10%", Percent(-3.1))
	assert.Equal(t, "+50.00%", Percent(50))
}
