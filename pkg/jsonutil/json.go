// Package jsonutil holds the strict JSON encode/decode pair shared by the clients.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Encode serialises v to JSON text.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode parses data into a generic structure (map[string]any, []any or a scalar).
// Numbers are kept as json.Number so integer ids survive without float rounding.
func Decode(data []byte) (any, error) {
	var out any
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeInto parses data into v with the same strictness as Decode.
func DecodeInto(data []byte, v any) error {
	return decode(data, v)
}

func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid character after top-level value")
	}
	return nil
}
