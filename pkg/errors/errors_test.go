package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorCarriesFields(t *testing.T) {
	err := ValidationError(map[string]string{"email": "Email is required"})

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "Email is required", err.Fields["email"])
}

func TestUnsupportedIsDistinctFromTransport(t *testing.T) {
	unsupported := UnsupportedError("Updating a member")
	transport := TransportError("create member", fmt.Errorf("connection refused"))

	assert.Equal(t, ErrorTypeUnsupported, unsupported.Type)
	assert.Equal(t, http.StatusNotImplemented, unsupported.HTTPStatus)

	assert.Equal(t, ErrorTypeNetwork, transport.Type)
	assert.Equal(t, http.StatusBadGateway, transport.HTTPStatus)
	assert.NotEqual(t, unsupported.Type, transport.Type)
}

func TestTransportErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := TransportError("fetch members", cause)
	assert.ErrorIs(t, err, cause)
}

func TestGetAPIError(t *testing.T) {
	apiErr := NotFoundError("Member")
	assert.Equal(t, apiErr, GetAPIError(apiErr))
	assert.Nil(t, GetAPIError(fmt.Errorf("plain error")))
	assert.True(t, IsAPIError(apiErr))
	assert.False(t, IsAPIError(fmt.Errorf("plain error")))
}
