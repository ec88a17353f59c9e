package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CurrentVersion is the envelope version written by this build.
const CurrentVersion = 1

// Envelope is the versioned wrapper persisted under every key. Timestamps
// are Unix milliseconds.
type Envelope struct {
	Value      json.RawMessage `json:"value"`
	Timestamp  int64           `json:"timestamp"`
	Version    int             `json:"version"`
	Compressed bool            `json:"compressed"`
	ExpiresAt  *int64          `json:"expiresAt,omitempty"`
}

// stored is a payload decoded at the store boundary: either a versioned
// envelope or a legacy raw value written before envelopes existed.
type stored interface {
	isStored()
}

type legacyValue struct {
	raw json.RawMessage
}

type versionedValue struct {
	env Envelope
}

func (legacyValue) isStored()    {}
func (versionedValue) isStored() {}

var errMalformed = errors.New("malformed payload")

// decodePayload classifies payload. Objects carrying a "value" field are
// envelopes; any other valid JSON is a legacy raw value.
func decodePayload(payload string) (stored, error) {
	data := []byte(payload)
	if !json.Valid(data) {
		return nil, errMalformed
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Arrays, scalars and null are legacy values.
		return legacyValue{raw: data}, nil
	}
	if _, ok := fields["value"]; !ok {
		return legacyValue{raw: data}, nil
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return versionedValue{env: env}, nil
}

// unwrap returns the plain JSON value held by env, inflating it first when
// it was stored compressed.
func (env Envelope) unwrap() (json.RawMessage, error) {
	if !env.Compressed {
		return env.Value, nil
	}
	var packed string
	if err := json.Unmarshal(env.Value, &packed); err != nil {
		return nil, fmt.Errorf("compressed value is not a string: %w", err)
	}
	raw, err := Decompress(packed)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("decompressed value: %w", errMalformed)
	}
	return raw, nil
}

func (env Envelope) expired(nowMs int64) bool {
	return env.ExpiresAt != nil && nowMs >= *env.ExpiresAt
}
