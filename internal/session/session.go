package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/KaramelBytes/incidentloom-cli/internal/ingest"
	"github.com/KaramelBytes/incidentloom-cli/internal/workbook"
	"github.com/google/uuid"
)

// Session is one ingested workbook held in memory. A reload builds a new Session;
// existing ones are never mutated.
type Session struct {
	ID       string          `json:"id" yaml:"id"`
	Source   string          `json:"source" yaml:"source"`
	LoadedAt time.Time       `json:"loaded_at" yaml:"loaded_at"`
	Dataset  *ingest.Dataset `json:"-" yaml:"-"`
	Log      ingest.Log      `json:"log" yaml:"log"`
}

// New wraps an ingestion result.
func New(source string, ds *ingest.Dataset, log ingest.Log) *Session {
	if ds == nil {
		ds = ingest.NewDataset(nil)
	}
	return &Session{
		ID:       uuid.NewString(),
		Source:   source,
		LoadedAt: time.Now(),
		Dataset:  ds,
		Log:      log,
	}
}

// Load opens the workbook at path and runs it through p.
func Load(ctx context.Context, path string, p *ingest.Pipeline) (*Session, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	ds, log, err := p.Run(ctx, wb)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", filepath.Base(path), err)
	}
	return New(path, ds, log), nil
}

// Name is the base name of the source file.
func (s *Session) Name() string { return filepath.Base(s.Source) }

// Holder keeps the current session for long-running commands.
type Holder struct {
	mu  sync.RWMutex
	cur *Session
}

// Replace installs s as the current session and returns the previous one.
func (h *Holder) Replace(s *Session) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.cur
	h.cur = s
	return prev
}

// Current returns the current session, or nil before the first load.
func (h *Holder) Current() *Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cur
}
