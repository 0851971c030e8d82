package checkpoint

import "github.com/spacemeshos/go-pallets/common/types"

// Schema is the JSON schema of a checkpoint file. Files are validated against it
// before they are decoded.
const Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$id": "https://spacemesh.io/pallets/checkpoint.schema.json.1.0",
  "title": "runtime checkpoint",
  "type": "object",
  "required": ["version", "data"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "string"},
    "data": {
      "type": "object",
      "required": ["id", "height", "root", "balances", "nonces", "claims"],
      "additionalProperties": false,
      "properties": {
        "id": {"type": "string", "pattern": "^snapshot-[0-9]+$"},
        "height": {"type": "integer", "minimum": 0},
        "root": {"type": "string", "pattern": "^[0-9a-f]{64}$"},
        "balances": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["account", "balance"],
            "additionalProperties": false,
            "properties": {
              "account": {"type": "string", "minLength": 1, "maxLength": 64},
              "balance": {"type": "integer", "minimum": 0}
            }
          }
        },
        "nonces": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["account", "nonce"],
            "additionalProperties": false,
            "properties": {
              "account": {"type": "string", "minLength": 1, "maxLength": 64},
              "nonce": {"type": "integer", "minimum": 0, "maximum": 4294967295}
            }
          }
        },
        "claims": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["content", "owner"],
            "additionalProperties": false,
            "properties": {
              "content": {"type": "string", "maxLength": 256},
              "owner": {"type": "string", "minLength": 1, "maxLength": 64}
            }
          }
        }
      }
    }
  }
}`

// Checkpoint is the content of a checkpoint file.
type Checkpoint struct {
	Version string    `json:"version"`
	Data    InnerData `json:"data"`
}

// InnerData is the runtime state at the checkpoint height. Every list is ordered
// by its first field.
type InnerData struct {
	CheckpointId string       `json:"id"`
	Height       uint64       `json:"height"`
	Root         types.Hash32 `json:"root"`
	Balances     []Balance    `json:"balances"`
	Nonces       []Nonce      `json:"nonces"`
	Claims       []Claim      `json:"claims"`
}

type Balance struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

type Nonce struct {
	Account string `json:"account"`
	Nonce   uint32 `json:"nonce"`
}

type Claim struct {
	Content string `json:"content"`
	Owner   string `json:"owner"`
}
