package bootstrap

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	logger, sugar, err := InitLogger()

	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NotNil(t, sugar)
}

func TestInitConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, sugar, err := InitLogger()
	require.NoError(t, err)

	cfg, err := InitConfig(sugar)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.NotEmpty(t, cfg.Database.SecretsVolume)
}
