package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCommand(t *testing.T) {
	ctx := WithCommand(context.Background(), "add")
	assert.Equal(t, "add", GetCommand(ctx))
}

func TestWithTaskID(t *testing.T) {
	ctx := WithTaskID(context.Background(), "lx3k9q2aabc")
	assert.Equal(t, "lx3k9q2aabc", GetTaskID(ctx))
}

func TestGetters_NotPresent(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetCommand(ctx))
	assert.Empty(t, GetTaskID(ctx))
}

func TestBothValues(t *testing.T) {
	ctx := WithCommand(context.Background(), "toggle")
	ctx = WithTaskID(ctx, "abc")

	assert.Equal(t, "toggle", GetCommand(ctx))
	assert.Equal(t, "abc", GetTaskID(ctx))
}
