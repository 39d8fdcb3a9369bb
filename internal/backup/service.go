package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/metrics"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=backup_test

const (
	RootFolderName = "ares-state-backup"
	// states in one backup file
	chunkSize = 200
)

type File struct {
	ID          string
	Name        string
	CreatedTime string
}

type fileStore interface {
	FindFolder(ctx context.Context, name string) ([]string, error)
	CreateFolder(ctx context.Context, name string) (string, error)
	DeleteFile(ctx context.Context, id string) error
	ListFiles(ctx context.Context, folderID string) ([]File, error)
	Upload(ctx context.Context, folderID, name string, data []byte) (string, error)
	Share(ctx context.Context, fileID, email string) (string, error)
}

type stateSource interface {
	ListUpdatedSince(ctx context.Context, since *time.Time) ([]state.StoredState, error)
}

// Entry is one backed up state. The payload stays encrypted.
type Entry struct {
	UserID        string     `json:"userId"`
	Payload       string     `json:"payload"`
	Timezone      string     `json:"timezone"`
	LastResetDate *time.Time `json:"lastResetDate,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Service copies the encrypted state blobs to Google Drive. Every run uploads
// the states changed since the newest backup file.
type Service struct {
	files          fileStore
	states         stateSource
	metricsManager *metrics.Manager
	shareWith      string

	folderID string
}

// NewService finds or creates the root backups folder. shareWith, when set,
// gets reader access to everything uploaded.
func NewService(ctx context.Context, files fileStore, states stateSource, metricsManager *metrics.Manager, shareWith string) (*Service, error) {
	s := &Service{
		files:          files,
		states:         states,
		metricsManager: metricsManager,
		shareWith:      shareWith,
	}

	folders, err := files.FindFolder(ctx, RootFolderName)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve files: %w", err)
	}
	switch len(folders) {
	case 0:
		if err := s.createRootFolder(ctx); err != nil {
			return nil, err
		}
		log.Printf("new root backups folder created: %s", s.folderID)
	case 1:
		s.folderID = folders[0]
		log.Printf("found backups folder: %s", s.folderID)
	default:
		s.folderID = folders[0]
		log.Warnf("found %d root backups folders, taking the first one: %s", len(folders), s.folderID)
	}
	return s, nil
}

func (s *Service) FolderID() string {
	return s.folderID
}

func (s *Service) createRootFolder(ctx context.Context) error {
	id, err := s.files.CreateFolder(ctx, RootFolderName)
	if err != nil {
		return fmt.Errorf("failed to create root backups folder: %w", err)
	}
	s.folderID = id
	return s.share(ctx, id)
}

func (s *Service) share(ctx context.Context, fileID string) error {
	if s.shareWith == "" {
		return nil
	}
	permissionID, err := s.files.Share(ctx, fileID, s.shareWith)
	if err != nil {
		return fmt.Errorf("share %s: %w", fileID, err)
	}
	log.Debugf("permission %s created for %s", permissionID, fileID)
	return nil
}

// Reinit drops every backup and uploads all states again.
func (s *Service) Reinit(ctx context.Context, baseTime time.Time) (int, error) {
	log.Println("state backup reinit starting ...")
	if err := s.files.DeleteFile(ctx, s.folderID); err != nil {
		return 0, fmt.Errorf("delete backups folder: %w", err)
	}
	if err := s.createRootFolder(ctx); err != nil {
		return 0, err
	}
	return s.DoBackup(ctx, baseTime)
}

// DoBackup uploads the states changed since the last backup. Returns the number of states saved.
func (s *Service) DoBackup(ctx context.Context, baseTime time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.doBackup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := time.Now()
	defer func() {
		if s.metricsManager != nil && err == nil {
			s.metricsManager.HistStateBackupDuration.Observe(time.Since(start).Seconds())
		}
	}()

	current, err := s.files.ListFiles(ctx, s.folderID)
	if err != nil {
		return 0, fmt.Errorf("list backup files: %w", err)
	}

	var since *time.Time
	prefix := "initial"
	for _, f := range current {
		createdAt, err := time.Parse(time.RFC3339, f.CreatedTime)
		if err != nil {
			log.Warnf("backup file %s, bad created time %q: %s", f.Name, f.CreatedTime, err)
			continue
		}
		if since == nil || createdAt.After(*since) {
			since = &createdAt
		}
	}
	if since != nil {
		prefix = "ares-states"
	}

	toBackup, err := s.states.ListUpdatedSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("list states: %w", err)
	}
	if len(toBackup) == 0 {
		log.Println("no changed states to backup, done")
		return 0, nil
	}

	names := make([]string, 0, len(current))
	for _, f := range current {
		names = append(names, f.Name)
	}
	base := uniqueBaseName(fmt.Sprintf("%s-%d-%d-%d", prefix, baseTime.Day(), baseTime.Month(), baseTime.Year()), names)

	if err := s.upload(ctx, base, toBackup); err != nil {
		return 0, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterStateBackups.Inc()
	}
	span.SetAttributes(attribute.Int("states", len(toBackup)))
	log.Printf("backup of %d states saved: %s", len(toBackup), base)
	return len(toBackup), nil
}

// uniqueBaseName appends a counter while a file with the first chunk name exists.
func uniqueBaseName(base string, existing []string) string {
	name := base
	for i := 2; slices.Contains(existing, chunkName(name, 1)); i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	return name
}

func chunkName(base string, i int) string {
	return fmt.Sprintf("%s_%d.json", base, i)
}

func (s *Service) upload(ctx context.Context, base string, states []state.StoredState) error {
	for i, chunk := range slices.Collect(slices.Chunk(states, chunkSize)) {
		entries := make([]Entry, 0, len(chunk))
		for _, st := range chunk {
			entries = append(entries, Entry{
				UserID:        st.UserID,
				Payload:       st.Payload,
				Timezone:      st.Timezone,
				LastResetDate: st.LastResetDate,
				UpdatedAt:     st.UpdatedAt,
			})
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("marshal backup chunk: %w", err)
		}

		name := chunkName(base, i+1)
		id, err := s.files.Upload(ctx, s.folderID, name, data)
		if err != nil {
			return fmt.Errorf("%s: upload: %w", name, err)
		}
		if err := s.share(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		log.Debugf("%s: %d states saved as %s", name, len(entries), id)
	}
	return nil
}
