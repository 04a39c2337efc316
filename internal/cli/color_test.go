package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorHelpers(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) string
		input string
	}{
		{"Primary", Primary, "Morning clock in"},
		{"Error", Error, "could not save"},
		{"Warning", Warning, "keep clocker watch running"},
		{"Info", Info, "auto clock-out scheduled"},
		{"Silent", Silent, "not scheduled"},
		{"Text", Text, "clocked in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.fn(tt.input)
			assert.NotEmpty(t, result)
			assert.Contains(t, result, tt.input)
		})
	}
}

func TestClockState(t *testing.T) {
	assert.Contains(t, ClockState(true), "clocked in")
	assert.Contains(t, ClockState(false), "clocked out")
}
