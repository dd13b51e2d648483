// Package hookio speaks the host's hook protocol: a JSON payload arrives on
// stdin with every invocation, and a single JSON object on stdout carries
// anything the hook wants the host to surface.
package hookio

import (
	"encoding/json"
	"io"
	"strings"
)

// Response is the hook protocol reply.
type Response struct {
	Decision      string `json:"decision,omitempty"`
	SystemMessage string `json:"systemMessage,omitempty"`
}

// Drain consumes the hook payload. Its content is irrelevant to both hooks,
// and a malformed payload is not this tool's problem, but the protocol
// expects stdin to be read.
func Drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, r)
}

// Write emits the response on w. An empty response writes nothing at all,
// which the host treats the same as an empty message.
func Write(w io.Writer, resp Response) error {
	if resp == (Response{}) {
		return nil
	}
	return json.NewEncoder(w).Encode(resp)
}

// JoinLines builds a systemMessage body from per-declaration status lines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
