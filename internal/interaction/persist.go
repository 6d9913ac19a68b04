package interaction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	rlerrors "routelens/internal/errors"
)

// Save writes the graph document to path, creating parent directories. A
// .zst suffix enables zstd compression of the JSON payload.
func Save(graph *Graph, path string) error {
	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}

	if strings.HasSuffix(path, ".zst") {
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf)
		if err != nil {
			return fmt.Errorf("init zstd writer: %w", err)
		}
		if _, err := enc.Write(data); err != nil {
			_ = enc.Close()
			return fmt.Errorf("compress graph: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("finish compression: %w", err)
		}
		data = buf.Bytes()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create graph directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a persisted graph document, rejecting unreadable files and
// unrecognized schema versions.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rlerrors.New(rlerrors.GraphUnreadable, fmt.Sprintf("cannot read interaction graph at %s", path), err)
	}

	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, rlerrors.New(rlerrors.GraphUnreadable, "cannot initialize zstd reader", err)
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, rlerrors.New(rlerrors.GraphUnreadable, fmt.Sprintf("cannot decompress interaction graph at %s", path), err)
		}
	}

	var graph Graph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, rlerrors.New(rlerrors.GraphUnreadable, fmt.Sprintf("cannot parse interaction graph at %s", path), err)
	}

	if graph.SchemaVersion != SchemaVersion {
		return nil, rlerrors.New(rlerrors.SchemaUnsupported,
			fmt.Sprintf("graph schema version %d is not supported (want %d)", graph.SchemaVersion, SchemaVersion), nil).
			WithDetails(map[string]int{"schemaVersion": graph.SchemaVersion})
	}

	return &graph, nil
}
