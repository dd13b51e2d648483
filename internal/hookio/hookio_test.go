package hookio

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Run("empty response writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, Response{}))
		assert.Zero(t, buf.Len())
	})

	t.Run("system message only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, Response{
			SystemMessage: "Injected: GitHub",
		}))
		assert.JSONEq(t, `{"systemMessage": "Injected: GitHub"}`, buf.String())
	})

	t.Run("decision with message", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, Response{
			Decision:      "approve",
			SystemMessage: "Removed: GitHub\nAlready clean: GitLab",
		}))

		var decoded map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "approve", decoded["decision"])
		assert.Equal(t, "Removed: GitHub\nAlready clean: GitLab", decoded["systemMessage"])
	})

	t.Run("output is a single line", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, Response{Decision: "approve"}))
		assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	})
}

func TestDrain(t *testing.T) {
	// The hook payload may be anything, including malformed JSON; Drain
	// must consume it without complaint.
	for _, payload := range []string{
		`{"session_id": "abc", "hook_event_name": "SessionStart"}`,
		`not json at all`,
		``,
	} {
		r := strings.NewReader(payload)
		Drain(r)
		assert.Zero(t, r.Len(), "payload %q not fully consumed", payload)
	}
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "", JoinLines(nil))
	assert.Equal(t, "a", JoinLines([]string{"a"}))
	assert.Equal(t, "a\nb", JoinLines([]string{"a", "b"}))
}
