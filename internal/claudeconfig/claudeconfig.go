// Package claudeconfig owns all reads and writes of the Claude configuration
// file (~/.claude.json). The document is held as a generic JSON tree so that
// everything outside the env maps this tool touches survives a rewrite
// untouched, including fields this tool knows nothing about.
package claudeconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/astrogilda/credhook/internal/errors"
)

const serversKey = "mcpServers"

// File is a loaded Claude configuration document bound to its path.
// Mutations are tracked; Save writes nothing unless something changed.
type File struct {
	path  string
	mode  os.FileMode
	doc   map[string]any
	dirty bool
}

// Load reads and parses the configuration file. A missing file surfaces as
// an fs.ErrNotExist error so callers can decide whether that is a problem;
// a malformed file is always an error.
func Load(path string) (*File, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// Stat the handle, not the path: the mode must belong to the bytes we
	// read, even if another writer replaces the file meanwhile.
	info, err := src.Stat()
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	// Keep numbers as json.Number so untouched values like large project
	// timestamps are not rewritten in float form.
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.FileOperationError(
			"Parsing Claude config",
			path,
			"File is not valid JSON",
			err,
		)
	}

	return &File{path: path, mode: info.Mode().Perm(), doc: doc}, nil
}

// Path returns the file's location, for status reporting.
func (f *File) Path() string {
	return f.path
}

// Changed reports whether any mutation actually altered the document.
func (f *File) Changed() bool {
	return f.dirty
}

// SetEnv writes env[envVar] = value under the named MCP server. When the
// server block (or its env map) is absent, createServer decides between
// creating it and failing with ErrServerNotFound.
func (f *File) SetEnv(server, envVar, value string, createServer bool) error {
	servers, ok := f.doc[serversKey].(map[string]any)
	if !ok {
		if f.doc[serversKey] != nil {
			return errors.FileOperationError(
				"Updating Claude config",
				f.path,
				fmt.Sprintf("%q is not a JSON object", serversKey),
				nil,
			)
		}
		if !createServer {
			return fmt.Errorf("%w: %q", errors.ErrServerNotFound, server)
		}
		servers = map[string]any{}
		f.doc[serversKey] = servers
		f.dirty = true
	}

	block, ok := servers[server].(map[string]any)
	if !ok {
		if servers[server] != nil {
			return errors.FileOperationError(
				"Updating Claude config",
				f.path,
				fmt.Sprintf("Server %q is not a JSON object", server),
				nil,
			)
		}
		if !createServer {
			return fmt.Errorf("%w: %q", errors.ErrServerNotFound, server)
		}
		block = map[string]any{}
		servers[server] = block
		f.dirty = true
	}

	env, ok := block["env"].(map[string]any)
	if !ok {
		if block["env"] != nil {
			return errors.FileOperationError(
				"Updating Claude config",
				f.path,
				fmt.Sprintf("Env block of server %q is not a JSON object", server),
				nil,
			)
		}
		env = map[string]any{}
		block["env"] = env
		f.dirty = true
	}

	if prev, ok := env[envVar].(string); ok && prev == value {
		return nil // already injected with the same value
	}

	env[envVar] = value
	f.dirty = true
	return nil
}

// RemoveEnv deletes env[envVar] under the named MCP server. It reports
// whether the key was actually present; a missing server, env map, or key
// is not an error.
func (f *File) RemoveEnv(server, envVar string) bool {
	servers, ok := f.doc[serversKey].(map[string]any)
	if !ok {
		return false
	}
	block, ok := servers[server].(map[string]any)
	if !ok {
		return false
	}
	env, ok := block["env"].(map[string]any)
	if !ok {
		return false
	}
	if _, present := env[envVar]; !present {
		return false
	}

	delete(env, envVar)
	f.dirty = true
	return true
}

// Save persists the document atomically: serialize to a temporary file in
// the same directory, then rename over the original. A crash mid-write never
// leaves a truncated config. No-op when nothing changed.
func (f *File) Save() error {
	if !f.dirty {
		return nil
	}

	data, err := json.MarshalIndent(f.doc, "", "  ")
	if err != nil {
		return errors.FileOperationError(
			"Saving Claude config",
			f.path,
			"Failed to serialize configuration",
			err,
		)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".claude.json.tmp-*")
	if err != nil {
		return errors.FileOperationError(
			"Saving Claude config",
			f.path,
			fmt.Sprintf("Failed to create temporary file: %v", err),
			err,
		)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.FileOperationError("Saving Claude config", f.path, "Failed to write temporary file", err)
	}
	if err := tmp.Chmod(f.mode); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.FileOperationError("Saving Claude config", f.path, "Failed to set file permissions", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.FileOperationError("Saving Claude config", f.path, "Failed to flush temporary file", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return errors.FileOperationError("Saving Claude config", f.path, "Failed to replace configuration file", err)
	}

	f.dirty = false
	return nil
}
