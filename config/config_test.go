package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadNoPathReturnsDefault(t *testing.T) {
	t.Parallel()

	cfg, err := Load(afero.NewMemMapFs(), viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFromFileOverridesDefault(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte(`
min-vote-delta: 7
genesis-validator-set-id: 3
data-dir: /var/lib/beefy
rpc-listen: 0.0.0.0:9300
`), 0o644))

	cfg, err := Load(fs, viper.New(), "/cfg.yaml")
	require.NoError(t, err)

	require.Equal(t, uint64(7), cfg.Worker.MinVoteDelta.Uint64())
	require.Equal(t, uint64(3), uint64(cfg.Worker.GenesisValidatorSetID))
	require.Equal(t, "/var/lib/beefy", cfg.DataDir)
	require.Equal(t, "0.0.0.0:9300", cfg.RPCListen)
	require.Equal(t, Default().HTTPListen, cfg.HTTPListen, "unset fields keep their default")
}

func TestLoadRejectsUnknownField(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte(`
not-a-real-field: true
`), 0o644))

	_, err := Load(fs, viper.New(), "/cfg.yaml")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(afero.NewMemMapFs(), viper.New(), "/does/not/exist.yaml")
	require.Error(t, err)
}
