package config

// schemaJSON is a JSON Schema for the on-disk config file, checked before
// the raw map is decoded into Config. Catching a typo'd key or a
// wrong-typed value here produces a much better error than a silently
// ignored mapstructure field.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "min-vote-delta": {"type": "integer", "minimum": 1},
    "genesis-validator-set-id": {"type": "integer", "minimum": 0},
    "data-dir": {"type": "string"},
    "archive-dir": {"type": "string"},
    "rpc-listen": {"type": "string"},
    "http-listen": {"type": "string"}
  },
  "additionalProperties": false
}`
