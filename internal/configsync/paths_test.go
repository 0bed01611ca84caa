package configsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPath_EventPerPlatform(t *testing.T) {
	cases := []struct {
		platform Platform
		name     string
	}{
		{PlatformIos, "event-config-ab_ios"},
		{PlatformAndroid, "event-config-ab_android"},
		{PlatformNone, "event-config-ab"},
	}

	for _, c := range cases {
		namespace, name, ok := ConfigPath(ConfigTypeEvent, c.platform)
		require.True(t, ok, c.platform.String())
		assert.Equal(t, "/event", namespace)
		assert.Equal(t, c.name, name)
	}
}

func TestConfigPath_UnknownPlatform(t *testing.T) {
	_, _, ok := ConfigPath(ConfigTypeEvent, PlatformUnknown)
	assert.False(t, ok)
}

func TestConfigPath_UnknownType(t *testing.T) {
	_, _, ok := ConfigPath(ConfigType(99), PlatformIos)
	assert.False(t, ok)
}

func TestParsePlatform(t *testing.T) {
	assert.Equal(t, PlatformIos, ParsePlatform("ios"))
	assert.Equal(t, PlatformAndroid, ParsePlatform("android"))
	assert.Equal(t, PlatformNone, ParsePlatform("none"))
	assert.Equal(t, PlatformUnknown, ParsePlatform(""))
	assert.Equal(t, PlatformUnknown, ParsePlatform("windows"))
}

func TestParseConfigType(t *testing.T) {
	got, ok := ParseConfigType("Event")
	require.True(t, ok)
	assert.Equal(t, ConfigTypeEvent, got)

	got, ok = ParseConfigType("event")
	require.True(t, ok)
	assert.Equal(t, ConfigTypeEvent, got)

	_, ok = ParseConfigType("Season")
	assert.False(t, ok)
}

func TestAllConfigTypes(t *testing.T) {
	assert.Equal(t, []ConfigType{ConfigTypeEvent}, AllConfigTypes())
}
