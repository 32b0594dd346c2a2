// Package config loads and validates the on-disk worker configuration:
// a viper-backed file layered under CLI flags, checked against a JSON
// schema before being decoded into the typed Config. No teacher file in
// the retrieval pack covers node-level config loading directly (the
// subsystem wasn't included), so this package is grounded on the
// libraries' own standard wiring pattern instead of a specific source
// file: viper.BindPFlags against a cobra/pflag flag set, mapstructure
// decoding, a pre-decode jsonschema validation pass.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/beefynet/beefy"
)

// Config is the complete on-disk/CLI configuration for cmd/beefy-voter.
type Config struct {
	Worker beefy.Config `mapstructure:",squash"`

	DataDir    string `mapstructure:"data-dir"`
	ArchiveDir string `mapstructure:"archive-dir"`
	RPCListen  string `mapstructure:"rpc-listen"`
	HTTPListen string `mapstructure:"http-listen"`
}

// Default returns the configuration used when no file or flags override
// it.
func Default() Config {
	return Config{
		Worker:     beefy.DefaultConfig(),
		DataDir:    "./beefy-data",
		RPCListen:  "127.0.0.1:9200",
		HTTPListen: "127.0.0.1:9201",
	}
}

// BindFlags registers every config field as a pflag, so cobra commands can
// layer CLI overrides on top of the file without duplicating field names.
func BindFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.Uint64("min-vote-delta", d.Worker.MinVoteDelta.Uint64(), "minimum blocks between successive self-votes")
	flags.Uint64("genesis-validator-set-id", uint64(d.Worker.GenesisValidatorSetID), "validator set id considered genesis at startup")
	flags.String("data-dir", d.DataDir, "directory for local worker state")
	flags.String("archive-dir", d.ArchiveDir, "directory to archive finalized justifications into (empty disables archival)")
	flags.String("rpc-listen", d.RPCListen, "gRPC listen address for the RPC sinks")
	flags.String("http-listen", d.HTTPListen, "HTTP listen address for /healthz and /metrics")
}

// Load reads path (if non-empty) from fs, layers v's bound flags over it,
// validates the merged result against the config schema, and decodes it.
func Load(fs afero.Fs, v *viper.Viper, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := fs.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("config: opening %s: %w", path, err)
		}
		defer f.Close()
		v.SetConfigType("yaml")
		if err := v.ReadConfig(f); err != nil {
			return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	raw := v.AllSettings()
	if err := validateSchema(raw); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(raw); err != nil {
		return cfg, fmt.Errorf("config: decoding: %w", err)
	}
	return cfg, nil
}

func validateSchema(raw map[string]any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.json", bytes.NewReader([]byte(schemaJSON))); err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}
	schema, err := compiler.Compile("config.json")
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	// jsonschema validates decoded JSON values (float64/string/bool/map/
	// slice), not Go-native types like viper's own uint64 settings; round
	// trip through encoding/json to normalize.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalizing config for validation: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return fmt.Errorf("normalizing config for validation: %w", err)
	}

	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}
