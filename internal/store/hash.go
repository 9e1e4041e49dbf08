package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// DomainEvaluation is the domain prefix for content-addressed evaluation
// IDs. The version suffix enables future algorithm migration.
const DomainEvaluation = "cstar/evaluation/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data); the null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordID computes the content-addressed ID for a record. The ID is stable
// across restarts and replays given the same inputs; the ID field itself is
// excluded from the hash.
func RecordID(rec Record) (string, error) {
	canonical, err := marshalCanonical(map[string]any{
		"scope_token":  rec.ScopeToken,
		"context_name": rec.ContextName,
		"observable":   rec.Observable,
		"eigenvalue":   rec.Eigenvalue,
		"verdict":      rec.Verdict,
		"size":         rec.Size,
		"seq":          rec.Seq,
	})
	if err != nil {
		return "", fmt.Errorf("RecordID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainEvaluation, canonical), nil
}

// marshalCanonical produces RFC 8785 canonical JSON for hashing: keys
// sorted by UTF-16 code units, strings NFC-normalized, no HTML escaping.
// Records are flat, so only string and integer values are supported; floats
// are deliberately rejected - they are formatted to canonical strings
// before they reach a Record.
func marshalCanonical(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalCanonicalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		switch v := obj[k].(type) {
		case string:
			vb, err := marshalCanonicalString(v)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			buf.Write(vb)
		case int64:
			fmt.Fprintf(&buf, "%d", v)
		case int:
			fmt.Fprintf(&buf, "%d", v)
		default:
			return nil, fmt.Errorf("key %q: unsupported type %T in canonical JSON", k, v)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalCanonicalString NFC-normalizes then JSON-encodes without HTML
// escaping.
func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return nil, err
	}
	// Encoder appends a newline.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// compareUTF16 compares strings by UTF-16 code units as required by
// RFC 8785. Go's native string ordering is UTF-8 bytewise, which differs
// for code points above the BMP.
func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
