package tui

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/derailed/tview"

	"github.com/ajramos/echo-tui/internal/api"
	"github.com/ajramos/echo-tui/internal/config"
	"github.com/ajramos/echo-tui/internal/db"
	"github.com/ajramos/echo-tui/internal/prompts"
	"github.com/ajramos/echo-tui/internal/services"
)

// View names for the main page switcher
const (
	viewInput  = "input"
	viewResult = "result"
)

// App encapsulates the terminal UI and the Echo API client
type App struct {
	*tview.Application
	Pages  *tview.Pages
	Config *config.Config
	Client *api.Client
	Keys   config.KeyBindings

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
	views  map[string]tview.Primitive

	// Prompt editor
	editor *PromptEditor

	// View state. Exactly one of the input/result views is visible at a
	// time, decided by whether currentResult is set.
	currentView     string
	enhanceInFlight bool
	currentResult   *api.EnhanceResult

	// currentSaved is set while the result page shows a locally saved
	// prompt instead of a fresh enhancement
	currentSaved *prompts.SavedPrompt

	// Template state
	templates        []prompts.Template
	templateFilter   string
	selectedTemplate *prompts.Template

	// Advanced settings overrides
	temperature  float64
	maxTokens    int
	systemPrompt string

	// Services
	enhanceService  services.EnhanceService
	templateService services.TemplateService
	savedService    services.SavedService
	errorHandler    *ErrorHandler

	// Database store (SQLite)
	dbStore *db.Store

	// Debug logging
	logger  *log.Logger
	logFile *os.File

	// UI lifecycle
	uiReady bool
}

// NewApp creates a new Echo TUI application
func NewApp(client *api.Client, cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		Application: tview.NewApplication(),
		Pages:       tview.NewPages(),
		Config:      cfg,
		Client:      client,
		Keys:        cfg.Keys,
		ctx:         ctx,
		cancel:      cancel,
		views:       make(map[string]tview.Primitive),
		currentView: viewInput,
		temperature: cfg.Enhance.Temperature,
		maxTokens:   cfg.Enhance.MaxTokens,
	}

	app.initLogger()

	return app
}

// RegisterDBStore wires the optional local store into the app before Run
func (a *App) RegisterDBStore(store *db.Store) {
	a.dbStore = store
}

// Run starts the application
func (a *App) Run() error {
	a.initServices()
	a.initComponents()
	a.initTemplatePanel()
	a.initLayout()
	a.bindKeys()

	// Template list loads once, in the background; failure never blocks the page
	go a.loadTemplates()

	a.SetRoot(a.views["root"], true)
	a.EnableMouse(true)
	a.SetFocus(a.editor)
	a.uiReady = true

	err := a.Application.Run()

	a.cancel()
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
	if a.dbStore != nil {
		_ = a.dbStore.Close()
	}
	return err
}

// initServices builds the service layer over the API client and local store
func (a *App) initServices() {
	a.enhanceService = services.NewEnhanceService(a.Client)

	var templateStore *db.TemplateStore
	var savedStore *db.SavedStore
	if a.dbStore != nil {
		templateStore = db.NewTemplateStore(a.dbStore)
		savedStore = db.NewSavedStore(a.dbStore)
	}

	templatesDir := a.Config.TemplatesDir
	if templatesDir == "" {
		templatesDir = config.DefaultTemplatesDir()
	}

	a.templateService = services.NewTemplateService(a.Client, templateStore, templatesDir, a.logger)
	a.savedService = services.NewSavedService(savedStore)
}

// initLogger opens the debug log file when configured
func (a *App) initLogger() {
	if a.Config.LogFile == "" {
		return
	}

	f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Warning: could not open log file: %v", err)
		return
	}
	a.logFile = f
	a.logger = log.New(f, "", log.LstdFlags)
}

// GetErrorHandler returns the centralized error handler
func (a *App) GetErrorHandler() *ErrorHandler {
	return a.errorHandler
}

// CurrentView returns which of the input/result views is active
func (a *App) CurrentView() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentView
}

// SelectedTemplate returns the active template, nil when none is selected
func (a *App) SelectedTemplate() *prompts.Template {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.selectedTemplate
}
