// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/json"
	"fmt"

	"github.com/golang/protobuf/jsonpb"
	"github.com/golang/protobuf/proto"
)

// jsonMarshaler renders messages with their schema field names
// (lowerCamelCase) and 64-bit integers as strings, the canonical
// protobuf JSON mapping.
var jsonMarshaler = jsonpb.Marshaler{}

// JSON returns the canonical JSON form of message.
func JSON(message proto.Message) (json.RawMessage, error) {
	text, err := jsonMarshaler.MarshalToString(message)
	if err != nil {
		return nil, fmt.Errorf("rendering %T as JSON: %w", message, err)
	}
	return json.RawMessage(text), nil
}

// JSONList returns a JSON array of the canonical forms of messages. An
// empty or nil list renders as [].
func JSONList[M proto.Message](messages []M) (json.RawMessage, error) {
	elements := make([]json.RawMessage, 0, len(messages))
	for _, message := range messages {
		element, err := JSON(message)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	return json.Marshal(elements)
}
