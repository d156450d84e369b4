package service

import (
	"context"
	"fmt"

	"github.com/trouvetonpro/dalil/internal/api"
	"github.com/trouvetonpro/dalil/internal/database/repository"
	"github.com/trouvetonpro/dalil/internal/directory"
	"github.com/trouvetonpro/dalil/internal/logger"
	"github.com/trouvetonpro/dalil/internal/metrics"
	"github.com/trouvetonpro/dalil/internal/prefs"
)

// Roster is one successful list fetch plus the local favourite flags.
type Roster struct {
	Workers   []directory.Worker
	Favorites map[string]bool
}

// DirectoryService backs the list and detail screens.
type DirectoryService struct {
	API       *api.Client
	Favorites *repository.FavoriteRepo
	Metrics   *metrics.Manager
	Log       logger.Logger
}

// Roster fetches the workers. A missing favourites store is not fatal: the
// list is still shown, without stars.
func (s *DirectoryService) Roster(ctx context.Context) (Roster, error) {
	workers, err := s.API.ListWorkers(ctx)
	if err != nil {
		return Roster{}, err
	}
	favs := map[string]bool{}
	if s.Favorites != nil {
		ids, err := s.Favorites.IDs(ctx)
		if err != nil {
			s.logger().Warn(ctx, "load favorites", logger.Error(err))
		} else {
			favs = ids
		}
	}
	return Roster{Workers: workers, Favorites: favs}, nil
}

// Detail fetches one worker.
func (s *DirectoryService) Detail(ctx context.Context, id string) (directory.Worker, error) {
	return s.API.GetWorker(ctx, id)
}

// ToggleFavorite flips the favourite flag and returns the new state.
func (s *DirectoryService) ToggleFavorite(ctx context.Context, w directory.Worker) (bool, error) {
	if s.Favorites == nil {
		return false, fmt.Errorf("favorites store not configured")
	}
	has, err := s.Favorites.Has(ctx, w.ID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	if has {
		if err := s.Favorites.Remove(ctx, w.ID); err != nil {
			return false, fmt.Errorf("toggle favorite: %w", err)
		}
	} else if err := s.Favorites.Add(ctx, repository.Favorite{WorkerID: w.ID, WorkerName: w.FullName()}); err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	s.Metrics.FavoriteToggled(!has)
	s.logger().Info(ctx, "favorite toggled", logger.String("worker_id", w.ID), logger.Any("on", !has))
	return !has, nil
}

// LoadSort returns the remembered ordering, defaulting to name.
func (s *DirectoryService) LoadSort() directory.SortKey {
	v, err := prefs.LoadView()
	if err != nil {
		s.logger().Warn(context.Background(), "load view prefs", logger.Error(err))
		return directory.SortByName
	}
	return directory.ParseSortKey(v.Sort)
}

// SaveSort remembers the ordering for the next run.
func (s *DirectoryService) SaveSort(k directory.SortKey) error {
	if err := prefs.SaveView(prefs.View{Sort: string(k)}); err != nil {
		return fmt.Errorf("save view prefs: %w", err)
	}
	return nil
}

func (s *DirectoryService) logger() logger.Logger {
	if s.Log == nil {
		return logger.Nop()
	}
	return s.Log
}
