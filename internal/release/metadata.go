package release

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/boostorg/release-publisher/internal/utils/logger"
)

// Record is the sidecar metadata accompanying each artifact variant:
// provenance (commit, created) and integrity (sha256) for one file.
type Record struct {
	Commit  string `json:"commit"`
	File    string `json:"file"`
	Created string `json:"created,omitempty"`
	SHA256  string `json:"sha256"`
}

const recordSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"commit":  {"type": "string"},
		"file":    {"type": "string"},
		"created": {"type": "string"},
		"sha256":  {"type": "string"}
	},
	"required": ["commit", "sha256"]
}`

var compiledRecordSchema = jsonschema.MustCompileString("record.schema.json", recordSchema)

// FileSHA256 computes the hex sha256 of a file, reading it in 4 KiB
// blocks rather than loading it into memory.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, 4096)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// LoadRecord reads and validates a sidecar metadata file. A record that
// does not satisfy the schema (missing commit or sha256, wrong types) is
// unusable and returns an error.
func LoadRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to read metadata %s: %w", path, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("failed to parse metadata %s: %w", path, err)
	}
	if err := compiledRecordSchema.Validate(raw); err != nil {
		return Record{}, fmt.Errorf("invalid metadata %s: %w", path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode metadata %s: %w", path, err)
	}
	return rec, nil
}

// Regenerate builds a fresh metadata record for the renamed artifact file.
// commit and created are carried forward from the snapshot's sidecar; file
// and sha256 are replaced, sha256 from the actual bytes on disk. A mismatch
// between the recorded and computed hash is reported but not fatal: the new
// record always carries the computed hash.
func Regenerate(snapshotJSON, fileName, computedSHA string) (Record, error) {
	snap, err := LoadRecord(snapshotJSON)
	if err != nil {
		return Record{}, err
	}

	if snap.SHA256 != computedSHA {
		log := logger.Logger()
		log.Errorf("Checksum failure for '%s'", fileName)
		log.Errorf("Recorded:   %s", snap.SHA256)
		log.Errorf("Calculated: %s", computedSHA)
	}

	return Record{
		Commit:  snap.Commit,
		File:    fileName,
		Created: snap.Created,
		SHA256:  computedSHA,
	}, nil
}

// WriteFile writes the record as minimally indented JSON.
func (r Record) WriteFile(path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write metadata %s: %w", path, err)
	}
	return nil
}
