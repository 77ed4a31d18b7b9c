package service

import (
	"context"
	"time"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/logger"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/versions/domain"
)

// PruneStaleAutoSaves drops auto-save-classified snapshots older than the
// retention window across every tracked document. Manual snapshots and the
// newest entry of each document are always kept, so revert targets survive.
func (s *HistoryService) PruneStaleAutoSaves(ctx context.Context, retention time.Duration) error {
	docIDs, err := s.repo.TrackedDocuments(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-retention)
	for _, docID := range docIDs {
		recs, err := s.repo.List(ctx, docID)
		if err != nil {
			return err
		}

		kept := make([]domain.VersionRecord, 0, len(recs))
		for i, rec := range recs {
			stale := i > 0 && rec.Change == domain.ChangeSave && rec.Timestamp.Before(cutoff)
			if !stale {
				kept = append(kept, rec)
			}
		}
		if len(kept) == len(recs) {
			continue
		}
		if err := s.repo.ReplaceAll(ctx, docID, kept); err != nil {
			return err
		}
		logger.Info("pruned stale auto-saves",
			logger.String("doc", docID),
			logger.Int("removed", len(recs)-len(kept)))
	}
	return nil
}
