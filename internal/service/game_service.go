package service

import (
	"fmt"

	"github.com/benbeisheim/chess-ai-backend/internal/config"
	"github.com/benbeisheim/chess-ai-backend/internal/engine"
	"github.com/benbeisheim/chess-ai-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
	depthEasy   int
	depthHard   int
	maxHistory  int
}

func NewGameService(gameManager *GameManager, cfg *config.Config) *GameService {
	return &GameService{
		gameManager: gameManager,
		depthEasy:   cfg.AI.DepthEasy,
		depthHard:   cfg.AI.DepthHard,
		maxHistory:  cfg.MaxHistory,
	}
}

// CreateGame starts a game owned by playerID and returns its id.
func (gs *GameService) CreateGame(playerID string, opts model.Options) (string, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return "", err
	}
	switch opts.Difficulty {
	case model.DifficultyEasy:
		opts.Depth = gs.depthEasy
	case model.DifficultyHard:
		opts.Depth = gs.depthHard
	}

	gameID := uuid.New().String()
	game := model.NewGame(gameID, playerID, opts, gs.maxHistory)
	if err := gs.gameManager.AddGame(game); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	log.Infof("game %s created by %s: mode=%s aiColor=%s depth=%d", gameID, playerID, opts.Mode, opts.AIColor, opts.Depth)

	game.Start()
	return gameID, nil
}

func (gs *GameService) GetGame(gameID string) (*model.Game, error) {
	return gs.gameManager.GetGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	if err := gs.gameManager.MakeMove(gameID, playerID, move); err != nil {
		return fmt.Errorf("move %s-%s: %w", move.From, move.To, err)
	}

	return nil
}

func (gs *GameService) HandleUndo(gameID string, playerID string) error {
	if err := gs.gameManager.Undo(gameID, playerID); err != nil {
		return fmt.Errorf("undo: %w", err)
	}

	return nil
}

func (gs *GameService) LegalMoves(gameID string, pos engine.Position) ([]engine.Position, error) {
	return gs.gameManager.LegalMoves(gameID, pos)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) SendError(gameID string, playerID string, err error) {
	gs.gameManager.SendError(gameID, playerID, err)
}

// DeleteGame drops a game and closes its observers' connections. Only its
// owner may do so.
func (gs *GameService) DeleteGame(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if game.Owner() != playerID {
		return model.ErrNotInGame
	}

	gs.gameManager.RemoveGame(gameID)
	game.Wait()
	game.CloseConnections("Game deleted")
	log.Infof("game %s deleted", gameID)
	return nil
}
