package tool_createnote

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/elee1766/pocketllm/src/aisdk"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 15, 4, 0, 0, time.UTC)

func TestCreateNoteTool(t *testing.T) {
	notesDir := filepath.FromSlash("/home/user/Documents")

	tests := []struct {
		name          string
		fs            func() afero.Fs
		args          map[string]interface{}
		expectedError bool
		wantText      string
		checkFS       func(t *testing.T, fs afero.Fs)
	}{
		{
			name: "write note",
			args: map[string]interface{}{
				"title":   "Grocery List",
				"content": "eggs\nmilk",
			},
			wantText: "Successfully created note 'Grocery List'. It was saved to " +
				filepath.Join(notesDir, "Grocery_List.txt") + " and can be opened in any text editor.",
			checkFS: func(t *testing.T, fs afero.Fs) {
				content, err := afero.ReadFile(fs, filepath.Join(notesDir, "Grocery_List.txt"))
				require.NoError(t, err)
				assert.Equal(t, "Grocery List\n\nCreated: Sunday, March 1, 2026 at 3:04 PM\n\neggs\nmilk", string(content))
			},
		},
		{
			name: "folder becomes a subdirectory",
			args: map[string]interface{}{
				"title":   "Standup",
				"content": "ship it",
				"folder":  "Work",
			},
			checkFS: func(t *testing.T, fs afero.Fs) {
				exists, err := afero.Exists(fs, filepath.Join(notesDir, "Work", "Standup.txt"))
				require.NoError(t, err)
				assert.True(t, exists)
			},
		},
		{
			name: "folder cannot escape the notes directory",
			args: map[string]interface{}{
				"title":   "Escape",
				"content": "nope",
				"folder":  "../../etc",
			},
			checkFS: func(t *testing.T, fs afero.Fs) {
				exists, err := afero.Exists(fs, filepath.Join(notesDir, "etc", "Escape.txt"))
				require.NoError(t, err)
				assert.True(t, exists)
				exists, err = afero.Exists(fs, filepath.FromSlash("/home/etc/Escape.txt"))
				require.NoError(t, err)
				assert.False(t, exists)
			},
		},
		{
			name: "overwrites a note with the same title",
			fs: func() afero.Fs {
				fs := afero.NewMemMapFs()
				_ = afero.WriteFile(fs, filepath.Join(notesDir, "Todo.txt"), []byte("old"), 0o644)
				return fs
			},
			args: map[string]interface{}{"title": "Todo", "content": "new"},
			checkFS: func(t *testing.T, fs afero.Fs) {
				content, err := afero.ReadFile(fs, filepath.Join(notesDir, "Todo.txt"))
				require.NoError(t, err)
				assert.Contains(t, string(content), "\n\nnew")
			},
		},
		{
			name:          "read-only filesystem",
			fs:            func() afero.Fs { return afero.NewReadOnlyFs(afero.NewMemMapFs()) },
			args:          map[string]interface{}{"title": "Blocked", "content": "x"},
			expectedError: true,
		},
		{
			name:          "missing content",
			args:          map[string]interface{}{"title": "Empty"},
			expectedError: true,
			wantText:      "Invalid arguments for createNote: field 'content' is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.fs != nil {
				fs = tt.fs()
			}

			tool, err := Tool(Options{Fs: fs, Dir: notesDir, Location: time.UTC, Now: func() time.Time { return fixedNow }})
			require.NoError(t, err)

			argsJSON, err := json.Marshal(tt.args)
			require.NoError(t, err)

			resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
				Function: aisdk.FunctionCall{Name: Name, Arguments: argsJSON},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedError, resp.IsError, resp.Text())

			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, resp.Text())
			}
			if tt.expectedError && tt.wantText == "" {
				assert.Contains(t, resp.Text(), "Failed to create note: ")
			}
			if tt.checkFS != nil {
				tt.checkFS(t, fs)
			}
		})
	}
}

func TestCreateNoteCancelled(t *testing.T) {
	tool, err := Tool(Options{Fs: afero.NewMemMapFs(), Dir: "/notes"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := tool.Execute(ctx, &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: Name, Arguments: []byte(`{"title":"t","content":"c"}`)},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Contains(t, resp.Text(), "Failed to create note")
}

func TestCreateNoteDescription(t *testing.T) {
	tool, err := Tool(Options{Fs: afero.NewMemMapFs(), Dir: "/notes", Location: time.UTC, Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	assert.Contains(t, tool.GetDescription(), "Current date/time is 2026-03-01 15:04.")
}
