// Package sim runs batches of bot-vs-bot games and records the results.
package sim

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"catan/board"
	"catan/bot"
	"catan/engine"
	"catan/game"
)

// Config describes one batch. A zero Seed gives every game a time-based seed;
// otherwise game i plays with Seed+i, so a whole batch can be replayed.
type Config struct {
	Games    int
	Players  []string
	TargetVP int
	Seed     uint64
}

// GameRecord is the outcome of one simulated game.
type GameRecord struct {
	ID         int
	Seed       uint64
	Winner     string
	WinnerSeat int
	Turns      int
	Scores     []int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// Run plays cfg.Games games with greedy bots in every seat. Games that fail
// (an exhausted action budget counts as a failure) abort the batch.
func Run(cfg Config) ([]GameRecord, error) {
	if cfg.Games < 1 {
		return nil, fmt.Errorf("%w: batch needs at least one game", game.ErrConfig)
	}

	log.Info().Int("games", cfg.Games).Msg("starting batch")

	var records []GameRecord
	for i := 0; i < cfg.Games; i++ {
		seed := cfg.Seed
		if seed != 0 {
			seed += uint64(i)
		}
		record, err := runGame(i+1, seed, cfg)
		if err != nil {
			return records, fmt.Errorf("game %d failed: %w", i+1, err)
		}
		log.Info().
			Int("game", record.ID).
			Str("winner", record.Winner).
			Int("turns", record.Turns).
			Msg("game complete")
		records = append(records, record)
	}

	log.Info().Int("games", len(records)).Msg("batch complete")
	return records, nil
}

func runGame(id int, seed uint64, cfg Config) (GameRecord, error) {
	e, err := engine.New(game.Config{
		Players:  cfg.Players,
		TargetVP: cfg.TargetVP,
		Seed:     seed,
	})
	if err != nil {
		return GameRecord{}, err
	}

	agents := make([]engine.Agent, len(cfg.Players))
	for seat := range agents {
		agents[seat] = bot.NewGreedy(seat)
	}

	start := time.Now()
	winner, err := e.Run(agents)
	if err != nil {
		return GameRecord{}, err
	}
	end := time.Now()

	state := e.State()
	record := GameRecord{
		ID:         id,
		Seed:       state.Seed,
		WinnerSeat: winner,
		Turns:      state.Turn,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
	}
	if winner != board.NoOwner {
		record.Winner = state.Players[winner].Name
	}
	for seat := range state.Players {
		record.Scores = append(record.Scores, state.Score(seat))
	}
	return record, nil
}
