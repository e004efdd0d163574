package data

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a hex encoded BLAKE2b-256 digest of the tables.
// The digest is taken over canonical JSON: map keys sorted, and null, empty
// lists and empty objects all treated as absent. Tables that differ only in
// nil versus empty collections hash equally, whichever of the YAML files,
// bundles or jsonb rows they were decoded from.
func Fingerprint(t *Tables) (string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encoding tables for fingerprint: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("decoding tables for fingerprint: %w", err)
	}

	canonical, err := json.Marshal(canonicalize(doc))
	if err != nil {
		return "", fmt.Errorf("encoding canonical tables: %w", err)
	}
	sum := blake2b.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalize drops object members that are null or empty and turns empty
// objects and lists into null. List elements keep their positions, since
// overlays are indexed by level.
func canonicalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			if c := canonicalize(elem); c != nil {
				out[k] = c
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		if len(v) == 0 {
			return nil
		}
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = canonicalize(elem)
		}
		return out
	default:
		return v
	}
}
