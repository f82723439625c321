// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes value to w as indented JSON followed by a newline.
// A json.RawMessage is re-indented rather than re-encoded.
func WriteJSON(w io.Writer, value any) error {
	compact, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, compact, "", "  "); err != nil {
		return fmt.Errorf("indenting JSON output: %w", err)
	}
	indented.WriteByte('\n')
	_, err = w.Write(indented.Bytes())
	return err
}
