// Package fake holds in-memory stand-ins for the storage layer, for tests that
// do not need a Redis container.
package fake

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
)

// GameRepository - map-backed repository.GameRepository. Update holds the lock
// for the whole change, matching the all-or-nothing behaviour of the Redis one.
type GameRepository struct {
	mu    sync.Mutex
	games map[string]entity.Game
}

var _ repository.GameRepository = (*GameRepository)(nil)

func NewGameRepository() *GameRepository {
	return &GameRepository{
		games: make(map[string]entity.Game),
	}
}

func (that *GameRepository) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = clone(*game)

	return nil
}

func (that *GameRepository) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}

	game = clone(game)

	return &game, nil
}

func (that *GameRepository) Update(_ context.Context, id string, change func(game *entity.Game) error) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}

	game := clone(stored)
	if err := change(&game); err != nil {
		return nil, err
	}

	that.games[id] = clone(game)

	return &game, nil
}

func (that *GameRepository) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return repository.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

// clone - copies the winning line so callers never share a slice with the store.
func clone(game entity.Game) entity.Game {
	if game.WinningLine != nil {
		game.WinningLine = append([]int(nil), game.WinningLine...)
	}
	return game
}
