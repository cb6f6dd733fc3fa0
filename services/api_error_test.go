package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeErrorNil(t *testing.T) {
	assert.Nil(t, NormalizeError(nil))
}

func TestNormalizeErrorStructuredBodyWins(t *testing.T) {
	err := &HTTPStatusError{
		Status: 422,
		Body:   []byte(`{"message":"referral code already taken"}`),
	}

	apiErr := NormalizeError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, "referral code already taken", apiErr.Message)
	assert.Equal(t, 422, apiErr.Status)
}

func TestNormalizeErrorFallsBackToStatusText(t *testing.T) {
	for _, body := range [][]byte{
		[]byte("<html>504</html>"),
		[]byte(`{"error":"wrong shape"}`),
		nil,
	} {
		apiErr := NormalizeError(&HTTPStatusError{Status: 404, Body: body})
		require.NotNil(t, apiErr)
		assert.Equal(t, "Not Found", apiErr.Message)
		assert.Equal(t, 404, apiErr.Status)
	}
}

func TestNormalizeErrorUnknownStatusUsesGenericMessage(t *testing.T) {
	apiErr := NormalizeError(&HTTPStatusError{Status: 599})
	require.NotNil(t, apiErr)
	assert.Equal(t, "An unknown error occurred", apiErr.Message)
	assert.Equal(t, 599, apiErr.Status)
}

func TestNormalizeErrorTransportFailure(t *testing.T) {
	apiErr := NormalizeError(errors.New("dial tcp: connection refused"))
	require.NotNil(t, apiErr)
	assert.Equal(t, "dial tcp: connection refused", apiErr.Message)
	assert.Zero(t, apiErr.Status, "transport failures carry no HTTP status")
}

func TestNormalizeErrorPassesAPIErrorThrough(t *testing.T) {
	orig := &APIError{Message: "score below qualification threshold"}
	assert.Same(t, orig, NormalizeError(orig))

	wrapped := fmt.Errorf("creating entry: %w", orig)
	assert.Same(t, orig, NormalizeError(wrapped))
}

func TestNormalizeErrorWrappedStatusError(t *testing.T) {
	inner := &HTTPStatusError{Status: 401, Body: []byte(`{"message":"invalid credentials"}`)}
	apiErr := NormalizeError(fmt.Errorf("login: %w", inner))
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.Equal(t, 401, apiErr.Status)
}

func TestAPIErrorString(t *testing.T) {
	assert.Equal(t, "nope (status 400)", (&APIError{Message: "nope", Status: 400}).Error())
	assert.Equal(t, "nope", (&APIError{Message: "nope"}).Error())
}
