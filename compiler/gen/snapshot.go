package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot records the content digest of every artifact of one run.
// Watch mode compares snapshots between runs to rewrite only the files
// that actually changed.
type Snapshot struct {
	// Digests maps output path to the hex SHA-256 of the content.
	Digests map[string]string `msgpack:"digests"`
}

// NewSnapshot digests the artifacts of a report.
func NewSnapshot(r *Report) *Snapshot {
	s := &Snapshot{Digests: make(map[string]string, len(r.Artifacts))}
	for _, a := range r.Artifacts {
		sum := sha256.Sum256([]byte(a.Content))
		s.Digests[a.Path] = hex.EncodeToString(sum[:])
	}
	return s
}

// Encode serializes the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeSnapshot deserializes a snapshot written by Encode.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schemaforge: decode snapshot: %w", err)
	}
	if s.Digests == nil {
		s.Digests = make(map[string]string)
	}
	return &s, nil
}

// LoadSnapshot reads a snapshot file. A missing file yields an empty
// snapshot, so the first watch iteration rewrites everything.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Snapshot{Digests: make(map[string]string)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("schemaforge: read snapshot: %w", err)
	}
	return DecodeSnapshot(data)
}

// Save writes the snapshot to disk.
func (s *Snapshot) Save(path string) error {
	data, err := s.Encode()
	if err != nil {
		return fmt.Errorf("schemaforge: encode snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Changed returns the paths whose digest differs from the previous
// snapshot, including paths absent from it, sorted.
func (s *Snapshot) Changed(prev *Snapshot) []string {
	var paths []string
	for path, digest := range s.Digests {
		if prev == nil || prev.Digests[path] != digest {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// Removed returns the paths present in the previous snapshot but not in
// this one, sorted.
func (s *Snapshot) Removed(prev *Snapshot) []string {
	var paths []string
	if prev == nil {
		return paths
	}
	for path := range prev.Digests {
		if _, ok := s.Digests[path]; !ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}
