// Package service implements version tracking over serialized LaTeX text:
// deciding when an edit is worth a snapshot, sequential version labeling,
// non-destructive revert, and index-aligned comparison between snapshots.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/logger"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/versions/domain"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/versions/repository"
)

// HistoryService handles business logic for document version history.
type HistoryService struct {
	repo *repository.VersionRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(repo *repository.VersionRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Save snapshots content when it differs meaningfully from the latest stored
// snapshot. It returns the new record, or nil when the change was below the
// threshold and nothing was stored.
func (s *HistoryService) Save(ctx context.Context, docID, content, author, note string, change domain.ChangeType) (*domain.VersionRecord, error) {
	return s.add(ctx, docID, content, author, note, change, false)
}

// Revert resolves a past version's content and appends it as a new snapshot
// with an explicit note. History is never rewritten: the target version and
// everything after it stay in place.
func (s *HistoryService) Revert(ctx context.Context, docID, label, author string) (*domain.VersionRecord, error) {
	target, err := s.repo.Get(ctx, docID, label)
	if err != nil {
		return nil, err
	}
	note := fmt.Sprintf("Reverted to version %s", label)
	return s.add(ctx, docID, target.Content, author, note, domain.ChangeModification, true)
}

func (s *HistoryService) add(ctx context.Context, docID, content, author, note string, change domain.ChangeType, force bool) (*domain.VersionRecord, error) {
	latest, err := s.repo.Latest(ctx, docID)
	if err != nil && !errors.Is(err, domain.ErrNoVersions) {
		return nil, err
	}

	prev := ""
	label := "1.0"
	if latest != nil {
		prev = latest.Content
		label = NextLabel(latest.Label)
	}
	if !force && !IsMeaningfulChange(prev, content) {
		logger.Debug("version save skipped, change below threshold", logger.String("doc", docID))
		return nil, nil
	}

	rec := &domain.VersionRecord{
		Label:     label,
		Content:   content,
		Timestamp: time.Now(),
		Author:    author,
		Change:    change,
		Note:      note,
	}
	if err := s.repo.Push(ctx, docID, rec); err != nil {
		return nil, err
	}
	logger.Info("version saved", logger.String("doc", docID), logger.String("label", label))
	return rec, nil
}

// List returns a document's history, newest first.
func (s *HistoryService) List(ctx context.Context, docID string) ([]domain.VersionRecord, error) {
	return s.repo.List(ctx, docID)
}

// Get returns one snapshot by label.
func (s *HistoryService) Get(ctx context.Context, docID, label string) (*domain.VersionRecord, error) {
	return s.repo.Get(ctx, docID, label)
}

// Compare runs the index-aligned line diff between two stored versions.
func (s *HistoryService) Compare(ctx context.Context, docID, oldLabel, newLabel string) ([]domain.DiffLine, error) {
	oldRec, err := s.repo.Get(ctx, docID, oldLabel)
	if err != nil {
		return nil, err
	}
	newRec, err := s.repo.Get(ctx, docID, newLabel)
	if err != nil {
		return nil, err
	}
	return Diff(oldRec.Content, newRec.Content), nil
}

// IsMeaningfulChange reports whether new content deserves a snapshot:
// it must be non-empty, differ after trimming, and either change the line
// count by more than one or change the non-whitespace character count by
// more than five characters and more than five percent of the larger side.
// The threshold suppresses snapshot spam from whitespace-only auto-saves.
func IsMeaningfulChange(prev, next string) bool {
	if strings.TrimSpace(next) == "" {
		return false
	}
	if strings.TrimSpace(prev) == strings.TrimSpace(next) {
		return false
	}

	lineDelta := abs(strings.Count(prev, "\n") - strings.Count(next, "\n"))
	if lineDelta > 1 {
		return true
	}

	prevLen := nonWhitespaceLen(prev)
	nextLen := nonWhitespaceLen(next)
	charDelta := abs(prevLen - nextLen)
	larger := prevLen
	if nextLen > larger {
		larger = nextLen
	}
	if larger == 0 {
		return false
	}
	return charDelta > 5 && float64(charDelta) > 0.05*float64(larger)
}

// NextLabel increments a version label by 0.1, rounded to one decimal.
// Labels are purely sequential, not semantic.
func NextLabel(latest string) string {
	v, err := strconv.ParseFloat(latest, 64)
	if err != nil {
		return "1.0"
	}
	return strconv.FormatFloat(v+0.1, 'f', 1, 64)
}

// Diff is a strictly index-aligned line comparison: no alignment or LCS is
// attempted, so a line inserted near the top reports every following line
// as modified. That over-reporting is an accepted property of the feature,
// not a defect.
func Diff(oldContent, newContent string) []domain.DiffLine {
	oldLines := strings.Split(oldContent, "\n")
	newLines := strings.Split(newContent, "\n")

	n := len(oldLines)
	if len(newLines) > n {
		n = len(newLines)
	}

	var out []domain.DiffLine
	for i := 0; i < n; i++ {
		oldLine, newLine := "", ""
		if i < len(oldLines) {
			oldLine = oldLines[i]
		}
		if i < len(newLines) {
			newLine = newLines[i]
		}
		switch {
		case oldLine == newLine:
		case oldLine == "":
			out = append(out, domain.DiffLine{Line: i + 1, Kind: domain.DiffAdded, New: newLine})
		case newLine == "":
			out = append(out, domain.DiffLine{Line: i + 1, Kind: domain.DiffRemoved, Old: oldLine})
		default:
			out = append(out, domain.DiffLine{Line: i + 1, Kind: domain.DiffModified, Old: oldLine, New: newLine})
		}
	}
	return out
}

func nonWhitespaceLen(s string) int {
	n := 0
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			n++
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
