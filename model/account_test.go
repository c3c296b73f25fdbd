package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountService(t *testing.T) {
	s, err := ParseAccountService("line")
	require.NoError(t, err)
	assert.Equal(t, AccountServiceLine, s)

	_, err = ParseAccountService("twitter")
	assert.Error(t, err)
}

func TestLogInServiceAndIDKey(t *testing.T) {
	key := LogInServiceAndID{Service: AccountServiceLine, ServiceID: "U1234"}
	assert.Equal(t, "line_U1234", key.String())

	parsed, err := ParseLogInServiceAndID("line_U1234")
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	// a service id containing underscores survives the round trip
	parsed, err = ParseLogInServiceAndID("line_U_1_2")
	require.NoError(t, err)
	assert.Equal(t, "U_1_2", parsed.ServiceID)

	for _, s := range []string{"", "line", "line_", "_U1234", "slack_U1234"} {
		_, err := ParseLogInServiceAndID(s)
		assert.Error(t, err, "input %q", s)
	}
}
