package dashboard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// ImportKind selects which dataset a CSV upload targets.
type ImportKind string

const (
	ImportOrders ImportKind = "orders"
	ImportItems  ImportKind = "items"
)

// ImportPhase is the state of a CSV import dialog.
type ImportPhase string

const (
	ImportClosed       ImportPhase = "closed"
	ImportOpen         ImportPhase = "open"
	ImportFileSelected ImportPhase = "file_selected"
	ImportUploading    ImportPhase = "uploading"
)

// CSVTemplate is a downloadable example file for bulk imports.
type CSVTemplate struct {
	FileName string
	Content  []byte
}

// ImportResult reports what a completed upload changed.
type ImportResult struct {
	OrdersAdded int    `json:"orders_added"`
	ItemsAdded  int    `json:"items_added"`
	Message     string `json:"message,omitempty"`
}

var (
	// ErrImportNotCSV rejects files without a .csv extension.
	ErrImportNotCSV = errors.New("dashboard: only .csv files are accepted")
	// ErrImportBusy rejects state changes while an upload is running.
	ErrImportBusy = errors.New("dashboard: upload already in progress")
	// ErrImportNoFile rejects uploads started before a file was chosen.
	ErrImportNoFile = errors.New("dashboard: no file selected")
)

// ImportSession models the CSV import dialog lifecycle: closed -> open ->
// file selected -> uploading -> closed on success. Failures return to the
// file-selected phase with the error retained for display.
type ImportSession struct {
	kind ImportKind

	mu       sync.Mutex
	phase    ImportPhase
	fileName string
	lastErr  error
	result   *ImportResult
}

// NewImportSession builds a closed session for the given dataset.
func NewImportSession(kind ImportKind) *ImportSession {
	return &ImportSession{kind: kind, phase: ImportClosed}
}

// Kind returns the dataset this session targets.
func (s *ImportSession) Kind() ImportKind { return s.kind }

// Open shows the dialog. Opening while uploading is rejected.
func (s *ImportSession) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == ImportUploading {
		return ErrImportBusy
	}
	s.phase = ImportOpen
	s.fileName = ""
	s.lastErr = nil
	s.result = nil
	return nil
}

// Close dismisses the dialog and clears transient state. Closing during an
// upload is rejected so the result is never silently lost.
func (s *ImportSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == ImportUploading {
		return ErrImportBusy
	}
	s.phase = ImportClosed
	s.fileName = ""
	s.lastErr = nil
	return nil
}

// SelectFile validates the chosen file name. The extension check is
// case-insensitive; anything but .csv is rejected and the dialog stays open.
func (s *ImportSession) SelectFile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case ImportClosed:
		return fmt.Errorf("dashboard: import dialog is not open")
	case ImportUploading:
		return ErrImportBusy
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		s.lastErr = ErrImportNotCSV
		return ErrImportNotCSV
	}
	s.phase = ImportFileSelected
	s.fileName = name
	s.lastErr = nil
	return nil
}

// RemoveFile discards the selected file and returns to the open phase.
func (s *ImportSession) RemoveFile() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case ImportClosed:
		return fmt.Errorf("dashboard: import dialog is not open")
	case ImportUploading:
		return ErrImportBusy
	}
	s.phase = ImportOpen
	s.fileName = ""
	s.lastErr = nil
	return nil
}

// BeginUpload transitions to uploading. It fails unless a file is selected.
func (s *ImportSession) BeginUpload() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case ImportUploading:
		return "", ErrImportBusy
	case ImportFileSelected:
	default:
		return "", ErrImportNoFile
	}
	s.phase = ImportUploading
	s.lastErr = nil
	return s.fileName, nil
}

// FinishUpload records the outcome. Success closes the dialog; failure
// returns to file-selected so the user can retry without re-picking.
func (s *ImportSession) FinishUpload(result ImportResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != ImportUploading {
		return
	}
	if err != nil {
		s.phase = ImportFileSelected
		s.lastErr = err
		return
	}
	s.phase = ImportClosed
	s.fileName = ""
	s.lastErr = nil
	s.result = &result
}

// ImportSnapshot is a point-in-time view for rendering.
type ImportSnapshot struct {
	Kind     ImportKind
	Phase    ImportPhase
	FileName string
	Err      error
	Result   *ImportResult
}

// Snapshot returns the current dialog state.
func (s *ImportSession) Snapshot() ImportSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := ImportSnapshot{
		Kind:     s.kind,
		Phase:    s.phase,
		FileName: s.fileName,
		Err:      s.lastErr,
	}
	if s.result != nil {
		result := *s.result
		snap.Result = &result
	}
	return snap
}
