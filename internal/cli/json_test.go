package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, buf *bytes.Buffer) JSONEnvelope {
	t.Helper()
	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	return env
}

func TestWriteJSONSuccess_BasicData(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONSuccess(&buf, map[string]string{"interface": "eth0"}))

	env := decodeEnvelope(t, &buf)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)

	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "eth0", dataMap["interface"])
}

func TestWriteJSONSuccess_NilData(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONSuccess(&buf, nil))

	env := decodeEnvelope(t, &buf)
	assert.True(t, env.Success)
	assert.Nil(t, env.Data)
	assert.Nil(t, env.Error)
}

func TestWriteJSONFailure_KeepsData(t *testing.T) {
	var buf bytes.Buffer

	err := errors.New(errors.ErrConfig, "Network interface 'wlan9' not found", "Did you mean 'wlan0'?")
	require.NoError(t, WriteJSONFailure(&buf, map[string]int{"failed": 1}, err))

	env := decodeEnvelope(t, &buf)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeResourceNotFound, env.Error.Code)
	assert.Equal(t, "Did you mean 'wlan0'?", env.Error.Suggestion)
	assert.NotNil(t, env.Data)
}

func TestWriteJSONFromError_NilError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONFromError(&buf, nil))

	env := decodeEnvelope(t, &buf)
	assert.False(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestWriteJSONFromError_GenericError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONFromError(&buf, fmt.Errorf("something went wrong")))

	env := decodeEnvelope(t, &buf)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeUnknown, env.Error.Code)
	assert.Equal(t, "something went wrong", env.Error.Message)
}

func TestWriteJSONFromError_WrappedStructuredError(t *testing.T) {
	var buf bytes.Buffer

	inner := errors.New(errors.ErrExec, "hostdash needs an interactive terminal", "")
	require.NoError(t, WriteJSONFromError(&buf, fmt.Errorf("starting: %w", inner)))

	env := decodeEnvelope(t, &buf)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeCommandFailed, env.Error.Code)
}

func TestErrorToJSON_NilReturnsNil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}

func TestErrorToJSON_AllInternalErrorCodes(t *testing.T) {
	tests := []struct {
		name         string
		internalCode string
		message      string
		wantCode     string
	}{
		{
			name:         "config file not found",
			internalCode: errors.ErrConfig,
			message:      "Config file not found",
			wantCode:     ErrCodeConfigNotFound,
		},
		{
			name:         "no config file",
			internalCode: errors.ErrConfig,
			message:      "No config file found",
			wantCode:     ErrCodeConfigNotFound,
		},
		{
			name:         "interface not found",
			internalCode: errors.ErrConfig,
			message:      "Network interface 'wlan9' not found",
			wantCode:     ErrCodeResourceNotFound,
		},
		{
			name:         "volume not found",
			internalCode: errors.ErrConfig,
			message:      "Disk volume '/mnt/x' not found",
			wantCode:     ErrCodeResourceNotFound,
		},
		{
			name:         "config invalid",
			internalCode: errors.ErrConfig,
			message:      "Failed to read config file",
			wantCode:     ErrCodeConfigInvalid,
		},
		{
			name:         "unavailable metric",
			internalCode: errors.ErrUnavailable,
			message:      "Battery not available on this host",
			wantCode:     ErrCodeMetricUnavailable,
		},
		{
			name:         "transient read",
			internalCode: errors.ErrTransient,
			message:      "Reading memory usage",
			wantCode:     ErrCodeReadFailed,
		},
		{
			name:         "exec error",
			internalCode: errors.ErrExec,
			message:      "Failed to get user input",
			wantCode:     ErrCodeCommandFailed,
		},
		{
			name:         "unknown code",
			internalCode: "SOMETHING",
			message:      "odd",
			wantCode:     ErrCodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ErrorToJSON(errors.New(tt.internalCode, tt.message, "some suggestion"))

			require.NotNil(t, result)
			assert.Equal(t, tt.wantCode, result.Code)
			assert.Equal(t, tt.message, result.Message)
			assert.Equal(t, "some suggestion", result.Suggestion)
		})
	}
}
