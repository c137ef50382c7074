package tool_createnote

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/elee1766/pocketllm/src/agent"
	"github.com/elee1766/pocketllm/src/assistant/toolsutil"
	"github.com/spf13/afero"
)

// Tool name constant
const Name = "createNote"

// CreateNoteInput represents the parameters for createNote
type CreateNoteInput struct {
	Title   string `json:"title" required:"true" description:"The title of the note" validate:"required"`
	Content string `json:"content" required:"true" description:"The detailed content of the note. Include all relevant information, summaries, or action items." validate:"required"`
	Folder  string `json:"folder,omitempty" description:"Optional folder name. If not specified, saves to the default folder."`
}

type Options struct {
	Fs       afero.Fs
	Dir      string
	Location *time.Location
	Now      func() time.Time
}

// Tool returns the createNote tool definition
func Tool(opts Options) (agent.Tool, error) {
	if opts.Fs == nil {
		return nil, fmt.Errorf("%s: filesystem is required", Name)
	}
	if opts.Dir == "" {
		return nil, fmt.Errorf("%s: notes directory is required", Name)
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return agent.NewTool(Name, describe(opts), makeCreateNoteHandler(opts))
}

func describe(opts Options) agent.Describer {
	return func() string {
		now := opts.Now().In(opts.Location).Format("2006-01-02 15:04")
		return fmt.Sprintf("Creates a note with the provided title and content. Current date/time is %s. Use this to save conversation summaries, action items, or important information discussed.", now)
	}
}

// noteContent lays out the stored note: title, creation stamp, body.
func noteContent(title, body string, created time.Time) string {
	return fmt.Sprintf("%s\n\nCreated: %s\n\n%s", title, toolsutil.FormatCreated(created), body)
}

func makeCreateNoteHandler(opts Options) agent.Handler[CreateNoteInput] {
	return func(ctx context.Context, input CreateNoteInput) agent.Result {
		select {
		case <-ctx.Done():
			return agent.Failure("Failed to create note: %v", ctx.Err())
		default:
		}

		dir := opts.Dir
		if sub := toolsutil.SafeSubdir(input.Folder); sub != "" {
			dir = filepath.Join(dir, sub)
		}
		path := filepath.Join(dir, toolsutil.FileNameFromTitle(input.Title))

		if err := opts.Fs.MkdirAll(dir, 0o755); err != nil {
			toolsutil.GetLogger().Error("failed to create notes directory", "dir", dir, "error", err)
			return agent.Failure("Failed to create note: %v", err)
		}

		content := noteContent(input.Title, input.Content, opts.Now().In(opts.Location))
		if err := afero.WriteFile(opts.Fs, path, []byte(content), 0o644); err != nil {
			toolsutil.GetLogger().Error("failed to write note", "path", path, "error", err)
			return agent.Failure("Failed to create note: %v", err)
		}

		toolsutil.GetLogger().Info("note written", "path", path, "size", len(content))
		return agent.Success("Successfully created note '%s'. It was saved to %s and can be opened in any text editor.", input.Title, path)
	}
}
