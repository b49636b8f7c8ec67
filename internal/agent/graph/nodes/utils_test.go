package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexusflow-ai/server/internal/agent/model"
)

func TestNormalizeMaxToolCalls(t *testing.T) {
	assert.Equal(t, DefaultMaxToolCalls, normalizeMaxToolCalls(0))
	assert.Equal(t, DefaultMaxToolCalls, normalizeMaxToolCalls(-5))
	assert.Equal(t, 3, normalizeMaxToolCalls(3))
}

func TestCheckAndMarkToolLimit(t *testing.T) {
	state := &model.AppState{}

	assert.False(t, checkAndMarkToolLimit(state, 2))
	assert.False(t, state.ToolCallLimitReached)

	state.ToolCallCount = 2
	assert.True(t, checkAndMarkToolLimit(state, 2))
	assert.True(t, state.ToolCallLimitReached)

	// already marked: no re-trigger
	assert.False(t, checkAndMarkToolLimit(state, 2))
}

func TestIncrementToolCallAndCheck(t *testing.T) {
	state := &model.AppState{}

	assert.False(t, incrementToolCallAndCheck(state, 2))
	assert.False(t, incrementToolCallAndCheck(state, 2))
	assert.Equal(t, 2, state.ToolCallCount)
	assert.False(t, state.ToolCallLimitReached)

	assert.True(t, incrementToolCallAndCheck(state, 2))
	assert.True(t, state.ToolCallLimitReached)
}
