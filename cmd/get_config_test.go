package cmd

import (
	"dashshim/core"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	initConfig()

	config := GetConfig()
	assert.Equal(t, 3000, config.Port)
	assert.Equal(t, "python", config.AppCommand)
	assert.Equal(t, []string{"app.py"}, config.AppArgs)
	assert.Equal(t, "http://localhost:8050", config.TargetURL)
	assert.Equal(t, core.DefaultStartupDelaySeconds, config.StartupDelaySeconds)
	assert.Equal(t, 0, config.AdminPort)
}

func TestPortFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	initConfig()

	assert.Equal(t, 8081, GetConfig().Port)
}

func TestInvalidPortFallsBackToDefault(t *testing.T) {
	initConfig()
	for _, value := range []string{"not-a-port", "0", "70000", "-5"} {
		t.Setenv("PORT", value)
		assert.Equal(t, core.DefaultPort, GetConfig().Port, "PORT=%q", value)
	}
}

func TestPrefixedEnvironment(t *testing.T) {
	t.Setenv("DASHSHIM_STARTUP_DELAY_SECONDS", "0")
	t.Setenv("DASHSHIM_TARGET", "http://localhost:9000")
	initConfig()

	config := GetConfig()
	assert.Equal(t, 0, config.StartupDelaySeconds)
	assert.Equal(t, "http://localhost:9000", config.TargetURL)
}
