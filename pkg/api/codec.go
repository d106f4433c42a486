// Package api holds the wire messages of the trip planner RPC services and
// the Connect handler and client constructors for them.
//
// Messages are plain Go structs carried as JSON.
package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

const codecName = "json"

// Codec is a Connect codec that marshals plain structs with encoding/json.
// It replaces the default protobuf JSON codec on both ends.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string {
	return codecName
}

func (Codec) Marshal(message any) ([]byte, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", message, err)
	}
	return data, nil
}

func (Codec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, message); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", message, err)
	}
	return nil
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// Completion is the "N of M completed" summary of a list.
type Completion struct {
	Completed int32   `json:"completed"`
	Total     int32   `json:"total"`
	Percent   float64 `json:"percent"`
}
