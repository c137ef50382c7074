package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/elee1766/pocketllm/src/agent"
	"github.com/elee1766/pocketllm/src/assistant"
	"github.com/elee1766/pocketllm/src/assistant/tools"
	"github.com/elee1766/pocketllm/src/assistant/toolsutil"
	"github.com/elee1766/pocketllm/src/calendar"
	"github.com/elee1766/pocketllm/src/chat"
	"github.com/elee1766/pocketllm/src/config"
	"github.com/elee1766/pocketllm/src/llm"
	"github.com/elee1766/pocketllm/src/ollamart"
	"github.com/elee1766/pocketllm/src/storage"
	"github.com/spf13/afero"
)

// App represents the main application with all services
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *storage.DB
	Calendar *calendar.Store
	Toolbox  *agent.DefaultToolbox
	Runtime  llm.Runtime
	Manager  *llm.Manager

	sink *chat.DBSink
	now  func() time.Time
}

// Options holds what New needs beyond the config
type Options struct {
	Config *config.Config
	Logger *slog.Logger

	// Fs backs the note store. Defaults to the OS filesystem.
	Fs afero.Fs
	// Runtime replaces the runtime selected by config.
	Runtime llm.Runtime
	// Conversation creates a persisted chat that messages and tool
	// executions are recorded under.
	Conversation bool
	// OnStateChange observes the manager.
	OnStateChange func(llm.SessionState)
	Now           func() time.Time
}

// New creates a new App instance with all services initialized
func New(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	toolsutil.SetLogger(logger.With("component", "tools"))

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	store, err := storage.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		Store:  store,
		now:    opts.Now,
	}
	if err := a.init(ctx, opts, loc); err != nil {
		store.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context, opts Options, loc *time.Location) error {
	cfg := a.Config
	db := a.Store.DB()

	a.Calendar = calendar.NewStore(db, calendar.Options{
		CloudBrand: cfg.Calendar.CloudBrand,
		Logger:     a.Logger.With("component", "calendar"),
	})
	access := StoreAccess(cfg.Calendar)

	chatID := ""
	if opts.Conversation {
		sink, err := chat.NewDBSink(ctx, db)
		if err != nil {
			return err
		}
		a.sink = sink
		chatID = sink.ChatID()
	}

	toolbox, err := tools.NewToolbox(tools.Deps{
		Events:        a.Calendar.Events(access),
		Reminders:     a.Calendar.Reminders(access),
		Fs:            opts.Fs,
		NotesDir:      cfg.Notes.Directory,
		EventCalendar: cfg.Calendar.EventCalendar,
		ReminderList:  cfg.Calendar.ReminderList,
		Location:      loc,
		Now:           a.now,
	})
	if err != nil {
		return fmt.Errorf("build toolbox: %w", err)
	}
	toolbox.RegisterMiddleware(agent.LoggingMiddleware(a.Logger))
	toolbox.RegisterMiddleware(agent.RecordingMiddleware(chat.NewLedger(db, chatID), a.Logger))
	a.Toolbox = toolbox

	a.Runtime = opts.Runtime
	if a.Runtime == nil {
		a.Runtime, err = NewRuntime(cfg.Model, a.Logger)
		if err != nil {
			return err
		}
	}

	a.Manager, err = llm.NewManager(llm.ManagerConfig{
		Runtime: a.Runtime,
		Toolbox: toolbox,
		Instructions: func() string {
			env := assistant.DetectEnvironment(ctx, a.now().In(loc))
			return assistant.GenerateInstructions(toolbox, env)
		},
		HistoryLimit:  cfg.Model.HistoryLimit,
		Logger:        a.Logger.With("component", "llm"),
		OnStateChange: opts.OnStateChange,
	})
	return err
}

// NewRuntime selects the model runtime named by cfg.
func NewRuntime(cfg config.ModelConfig, logger *slog.Logger) (llm.Runtime, error) {
	switch cfg.Runtime {
	case "", config.RuntimeOllama:
		return ollamart.New(ollamart.Config{
			BaseURL:       cfg.BaseURL,
			Model:         cfg.Name,
			MinMemoryMB:   cfg.MinMemoryMB,
			MaxToolRounds: cfg.MaxToolRounds,
			Temperature:   cfg.Temperature,
			Logger:        logger.With("component", "ollama"),
		})
	default:
		return nil, fmt.Errorf("unsupported runtime: %s", cfg.Runtime)
	}
}

// StoreAccess maps the configured access status onto the stores.
func StoreAccess(cfg config.CalendarConfig) calendar.Access {
	grant := cfg.GrantOnRequest
	return calendar.Access{
		Status: calendar.AccessStatus(cfg.Access),
		Request: func(ctx context.Context) (bool, error) {
			return grant, nil
		},
	}
}

// NewChat starts the conversation. Messages are persisted when the app was
// created with Conversation set.
func (a *App) NewChat(ctx context.Context) (*chat.Chat, error) {
	storeOpts := chat.StoreOptions{Logger: a.Logger, Now: a.now}
	if a.sink != nil {
		storeOpts.Sink = a.sink
	}
	return chat.New(ctx, chat.Options{
		Generator:     a.Manager,
		Store:         chat.NewStore(storeOpts),
		SurfaceErrors: a.Config.Chat.ShouldSurfaceErrors(),
		Logger:        a.Logger,
	})
}

// ChatID is the persisted chat id, or empty.
func (a *App) ChatID() string {
	if a.sink == nil {
		return ""
	}
	return a.sink.ChatID()
}

func (a *App) Close() error {
	return a.Store.Close()
}
