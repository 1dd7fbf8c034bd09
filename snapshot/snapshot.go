// Package snapshot packs world views into compressed frames for renderers
// and replay tooling, and fingerprints them for determinism checks.
package snapshot

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/nstehr/starfall/starfall-core/model"
	"github.com/nstehr/starfall/starfall-core/victory"
	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
)

// Frame is one render/replay frame.
type Frame struct {
	Seq    uint64          `json:"seq"`
	State  model.GameState `json:"state"`
	Result *victory.Result `json:"result,omitempty"`
}

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Encode marshals f to JSON and compresses it with lz4.
func Encode(f Frame) ([]byte, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal frame: %w", err)
	}
	return compress(raw)
}

// Decode reverses Encode.
func Decode(data []byte) (Frame, error) {
	raw, err := decompress(data)
	if err != nil {
		return Frame{}, err
	}
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return Frame{}, fmt.Errorf("unmarshal frame: %w", err)
	}
	return f, nil
}

// Digest is the hex blake3 hash of the state's JSON form. Identical
// command and tick sequences produce identical digests.
func Digest(gs model.GameState) (string, error) {
	raw, err := json.Marshal(gs)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func compress(src []byte) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	zw := lz4.NewWriter(buf)
	if _, err := zw.Write(src); err != nil {
		return nil, fmt.Errorf("lz4 write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("lz4 close: %w", err)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func decompress(src []byte) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	zr := lz4.NewReader(bytes.NewReader(src))
	if _, err := io.Copy(buf, zr); err != nil {
		return nil, fmt.Errorf("lz4 read: %w", err)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
