package srvcerror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/programme-lv/contest/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStatusIsInternal(t *testing.T) {
	err := srvcerror.New("some_code", "message")
	assert.Equal(t, http.StatusInternalServerError, err.HttpStatusCode())
	assert.Equal(t, "message", err.Error())
	assert.Equal(t, "some_code", err.ErrorCode())
}

func TestDebugErrorIsReachableThroughWrapping(t *testing.T) {
	sentinel := errors.New("db down")
	err := fmt.Errorf("failed to submit: %w",
		srvcerror.New("x", "y").SetDebug(fmt.Errorf("upsert: %w", sentinel)))

	require.ErrorIs(t, err, sentinel)

	var se *srvcerror.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "x", se.ErrorCode())
}
