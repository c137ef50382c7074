package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityExplain(t *testing.T) {
	tests := []struct {
		avail Availability
		want  string
	}{
		{Available(), "On-device model is available."},
		{Unavailable(ReasonDeviceNotEligible, ""), "On-device model is not available: Device not eligible."},
		{Unavailable(ReasonRuntimeNotEnabled, ""), "On-device model is not available: Local model runtime not enabled."},
		{Unavailable(ReasonModelNotReady, ""), "On-device model is not available: Model not ready."},
		{Unavailable(ReasonOther, "GPU driver crashed"), "On-device model is not available: GPU driver crashed"},
		{Unavailable(ReasonOther, ""), "On-device model is not available: unknown reason"},
	}

	seen := map[string]bool{}
	for _, tt := range tests {
		got := tt.avail.Explain()
		assert.Equal(t, tt.want, got)
		assert.False(t, seen[got], "explanations must be distinct")
		seen[got] = true
	}
}

func TestUserMessage(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &UnavailableError{Availability: Unavailable(ReasonModelNotReady, "")})
	assert.True(t, errors.Is(err, ErrModelNotAvailable))
	assert.Equal(t, "On-device model is not available: Model not ready.", UserMessage(err))

	assert.Equal(t, "Session is still responding. Please wait for the current response to finish.", UserMessage(ErrSessionBusy))
	assert.Equal(t, "On-device model is not available.", UserMessage(ErrModelNotAvailable))
	assert.Contains(t, UserMessage(errors.New("boom")), "boom")
	assert.Equal(t, "", UserMessage(nil))
}
