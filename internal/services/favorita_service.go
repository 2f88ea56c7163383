package services

import (
	"context"

	"github.com/trampo-app/trampo/internal/domain/vaga"
)

// FavoritaService implements vaga.FavoritaService
type FavoritaService struct {
	repo  vaga.FavoritaRepository
	vagas vaga.Repository
}

// NewFavoritaService creates a new favorites service
func NewFavoritaService(repo vaga.FavoritaRepository, vagas vaga.Repository) vaga.FavoritaService {
	return &FavoritaService{repo: repo, vagas: vagas}
}

// Add saves a vaga for the worker. Saving twice is a no-op.
func (s *FavoritaService) Add(ctx context.Context, prestadorID, vagaID string) error {
	if _, err := s.vagas.GetByID(ctx, vagaID); err != nil {
		return err
	}
	return s.repo.Add(ctx, &vaga.Favorita{VagaID: vagaID, PrestadorID: prestadorID})
}

// Remove forgets a saved vaga
func (s *FavoritaService) Remove(ctx context.Context, prestadorID, vagaID string) error {
	return s.repo.Remove(ctx, vagaID, prestadorID)
}

// List returns the worker's saved vagas
func (s *FavoritaService) List(ctx context.Context, prestadorID string) ([]*vaga.Vaga, error) {
	return s.repo.ListVagas(ctx, prestadorID)
}
