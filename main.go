package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catan/board"
	"catan/bot"
	"catan/engine"
	"catan/game"
	"catan/sim"
	"catan/store"
)

type envConfig struct {
	SaveDir  string `env:"CATAN_SAVE_DIR,default=saves"`
	LogLevel string `env:"CATAN_LOG_LEVEL,default=info"`
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML game config")
		loadPath   = flag.String("load", "", "save file to resume")
		players    = flag.String("players", "Alice,Bob,Carol", "comma-separated player names")
		target     = flag.Int("target", game.DefaultTargetVP, "victory points to win")
		seed       = flag.Uint64("seed", 0, "board and dice seed (0 = random)")
		simGames   = flag.Int("sim", 0, "run N bot games instead of playing")
		simOut     = flag.String("out", "batches", "output directory for -sim results")
	)
	flag.Parse()

	var env envConfig
	if err := envdecode.Decode(&env); err != nil {
		fmt.Fprintf(os.Stderr, "bad environment: %v\n", err)
		os.Exit(1)
	}
	setupLogging(env.LogLevel)

	if *simGames > 0 {
		if err := runBatch(*simGames, *players, *target, *seed, *simOut); err != nil {
			log.Fatal().Err(err).Msg("batch failed")
		}
		return
	}

	e, err := openGame(*configPath, *loadPath, *players, *target, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start game")
	}
	fresh := func() (*engine.Local, error) {
		return openGame(*configPath, "", *players, *target, *seed)
	}
	runInteractive(e, env.SaveDir, fresh, os.Stdin)
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)
}

func runBatch(games int, players string, target int, seed uint64, out string) error {
	records, err := sim.Run(sim.Config{
		Games:    games,
		Players:  splitNames(players),
		TargetVP: target,
		Seed:     seed,
	})
	if err != nil {
		return err
	}
	writer, err := sim.NewWriter(out)
	if err != nil {
		return err
	}
	if err := writer.WriteGameRecords(records); err != nil {
		return err
	}
	fmt.Printf("Wrote %d game records to %s\n", len(records), writer.Dir())
	return nil
}

func openGame(configPath, loadPath, players string, target int, seed uint64) (*engine.Local, error) {
	if loadPath != "" {
		snap, meta, err := store.Load(loadPath)
		if err != nil {
			return nil, err
		}
		e, err := engine.Load(snap)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Resumed %q (turn %d, %s)\n", meta.Name, meta.Turn, strings.Join(meta.Players, " vs "))
		return e, nil
	}

	cfg := game.Config{Players: splitNames(players), TargetVP: target, Seed: seed}
	if configPath != "" {
		loaded, err := game.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	e, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := e.State().AutoSetup(); err != nil {
		return nil, err
	}
	fmt.Println("Initial setup complete.")
	return e, nil
}

// runInteractive is the command loop. A finished game falls back to a menu
// (new/load/quit) instead of exiting, so a session can chain games.
func runInteractive(e *engine.Local, saveDir string, fresh func() (*engine.Local, error), in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		state := e.State()
		if state.Over() {
			fmt.Printf("Game over. Winner: %s\n", state.Players[state.Winner].Name)
			fmt.Println("Commands: new | load <name> | quit")
		} else {
			fmt.Println()
			fmt.Println(summary(state))
			fmt.Printf("%s holds: %s\n", state.CurrentPlayer().Name, handString(state.CurrentPlayer()))
			printHelp(state.Phase)
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println("Input closed.")
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "quit":
			return
		case "new":
			next, err := fresh()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			e = next
			continue
		}
		if err := dispatch(e, saveDir, parts); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func dispatch(e *engine.Local, saveDir string, parts []string) error {
	state := e.State()
	player := state.Current

	switch parts[0] {
	case "help":
		printHelp(state.Phase)
		return nil

	case "status":
		fmt.Println(summary(state))
		listDevCards(state.CurrentPlayer())
		return nil

	case "legal":
		for _, a := range e.LegalActions() {
			fmt.Printf("  %s\n", a)
		}
		return nil

	case "save":
		if len(parts) < 2 {
			return fmt.Errorf("usage: save <name>")
		}
		path := filepath.Join(saveDir, parts[1]+".json")
		meta, err := store.Save(path, parts[1], e.Snapshot())
		if err != nil {
			return err
		}
		fmt.Printf("Saved %q to %s\n", meta.Name, path)
		return nil

	case "load":
		if len(parts) < 2 {
			return fmt.Errorf("usage: load <name>")
		}
		snap, meta, err := store.Load(filepath.Join(saveDir, parts[1]+".json"))
		if err != nil {
			return err
		}
		if err := e.Restore(snap); err != nil {
			return err
		}
		fmt.Printf("Loaded %q (turn %d)\n", meta.Name, meta.Turn)
		return nil

	case "autoplay":
		turns := 1
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				return fmt.Errorf("usage: autoplay <turns>")
			}
			turns = n
		}
		return autoplay(e, turns)

	case "roll":
		events, err := e.Apply(game.NewAction(game.ActionRoll, player))
		printEvents(state, events)
		return err

	case "robber":
		return handleRobber(e, parts)

	case "discard":
		return handleDiscard(e)

	case "trade":
		if len(parts) < 3 {
			return fmt.Errorf("usage: trade <give> <receive> [rate]")
		}
		give, err := parseResource(parts[1])
		if err != nil {
			return err
		}
		receive, err := parseResource(parts[2])
		if err != nil {
			return err
		}
		a := game.NewAction(game.ActionTrade, player)
		a.Give, a.Receive = give, receive
		if len(parts) > 3 {
			if a.Rate, err = strconv.Atoi(parts[3]); err != nil {
				return fmt.Errorf("bad rate %q", parts[3])
			}
		}
		events, err := e.Apply(a)
		printEvents(state, events)
		return err

	case "done":
		_, err := e.Apply(game.NewAction(game.ActionFinishTrade, player))
		return err

	case "road", "settlement", "city":
		if len(parts) < 2 {
			return fmt.Errorf("usage: %s <id>", parts[0])
		}
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("bad id %q", parts[1])
		}
		var a game.Action
		switch parts[0] {
		case "road":
			a = game.NewAction(game.ActionBuildRoad, player)
			a.Edge = id
		case "settlement":
			a = game.NewAction(game.ActionBuildSettlement, player)
			a.Vertex = id
		case "city":
			a = game.NewAction(game.ActionBuildCity, player)
			a.Vertex = id
		}
		events, err := e.Apply(a)
		printEvents(state, events)
		return err

	case "dev":
		return handleDev(e, parts)

	case "end":
		_, err := e.Apply(game.NewAction(game.ActionEndTurn, player))
		return err

	default:
		return fmt.Errorf("unknown command %q (try 'help')", parts[0])
	}
}

// handleRobber moves the robber: "robber" picks the target with the most
// victims, "robber <hex> [victim]" is explicit.
func handleRobber(e *engine.Local, parts []string) error {
	state := e.State()
	player := state.Current

	a := game.NewAction(game.ActionMoveRobber, player)
	if len(parts) > 1 {
		hex, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("bad hex %q", parts[1])
		}
		a.Hex = hex
		if len(parts) > 2 {
			victim, err := strconv.Atoi(parts[2])
			if err != nil {
				return fmt.Errorf("bad victim %q", parts[2])
			}
			a.Victim = victim
		}
	} else {
		best, count := board.NoOwner, -1
		for _, hex := range state.RobberTargets() {
			if n := len(state.RobberVictims(player, hex)); n > count {
				best, count = hex, n
			}
		}
		a.Hex = best
	}

	events, err := e.Apply(a)
	printEvents(state, events)
	return err
}

// handleDiscard drains every pending discard with the greedy selection.
func handleDiscard(e *engine.Local) error {
	state := e.State()
	for len(state.PendingDiscards) > 0 {
		var owing int
		for id := range state.PendingDiscards {
			owing = id
			break
		}
		a := game.NewAction(game.ActionDiscard, owing)
		a.Resources = state.DiscardSelection(owing)
		events, err := e.Apply(a)
		if err != nil {
			return err
		}
		printEvents(state, events)
	}
	return nil
}

func handleDev(e *engine.Local, parts []string) error {
	state := e.State()
	player := state.Current
	if len(parts) < 2 {
		return fmt.Errorf("usage: dev buy | dev play <index>")
	}

	switch parts[1] {
	case "buy":
		events, err := e.Apply(game.NewAction(game.ActionBuyDevCard, player))
		printEvents(state, events)
		return err

	case "play":
		if len(parts) < 3 {
			return fmt.Errorf("usage: dev play <index>")
		}
		index, err := strconv.Atoi(parts[2])
		if err != nil {
			return fmt.Errorf("bad index %q", parts[2])
		}
		// Card arguments are filled the way the bot fills them; 'legal'
		// shows what the engine would accept.
		for _, a := range e.LegalActions() {
			if a.Type == game.ActionPlayDevCard && a.CardIndex == index {
				events, err := e.Apply(a)
				printEvents(state, events)
				return err
			}
		}
		return fmt.Errorf("%w: no playable card at index %d", game.ErrCardNotPlayable, index)

	default:
		return fmt.Errorf("usage: dev buy | dev play <index>")
	}
}

// autoplay hands the table to greedy bots for a number of actions' worth of
// turns, then returns control.
func autoplay(e *engine.Local, turns int) error {
	state := e.State()
	agents := make([]engine.Agent, len(state.Players))
	for seat := range agents {
		agents[seat] = bot.NewGreedy(seat)
	}

	startTurn := state.Turn
	for count := 0; !state.Over() && state.Turn < startTurn+turns; count++ {
		if count >= engine.MaxActions {
			return fmt.Errorf("autoplay stalled")
		}
		legal := e.LegalActions()
		if len(legal) == 0 {
			return fmt.Errorf("no legal actions in phase %s", state.Phase)
		}
		actor := legal[0].Player
		a := agents[actor].ChooseAction(state, legal)
		if _, err := e.Apply(a); err != nil {
			return err
		}
	}
	if state.Over() {
		fmt.Printf("Game over. Winner: %s\n", state.Players[state.Winner].Name)
	}
	return nil
}

func printEvents(state *game.GameState, events []game.Event) {
	for _, ev := range events {
		fmt.Printf("  %s\n", ev)
		if ev.Kind == game.EventProduction {
			for pid, payout := range ev.Payouts {
				fmt.Printf("    %s: %v\n", state.Players[pid].Name, payout)
			}
		}
	}
}

func summary(state *game.GameState) string {
	var players []string
	for id, p := range state.Players {
		players = append(players, fmt.Sprintf("%s(VP=%d S=%d C=%d R=%d)",
			p.Name, state.Score(id), len(p.Settlements), len(p.Cities), len(p.Roads)))
	}
	return fmt.Sprintf("Turn %d | Phase %s | Current %s | Robber on hex %d | %s",
		state.Turn, state.Phase, state.CurrentPlayer().Name, state.RobberHex,
		strings.Join(players, " | "))
}

func handString(p *game.Player) string {
	var parts []string
	for _, r := range board.ResourceTypes {
		parts = append(parts, fmt.Sprintf("%s:%d", r, p.Resources[r]))
	}
	return strings.Join(parts, " ")
}

func listDevCards(p *game.Player) {
	if len(p.DevCards) == 0 {
		fmt.Println("No development cards.")
		return
	}
	for index, card := range p.DevCards {
		fmt.Printf("[%d] %s\n", index, card)
	}
}

func printHelp(phase game.Phase) {
	common := "status | legal | new | save <name> | load <name> | autoplay <turns> | help | quit"
	switch phase {
	case game.PhaseRoll:
		fmt.Printf("Commands: roll | %s\n", common)
	case game.PhaseDiscard:
		fmt.Printf("Commands: discard | %s\n", common)
	case game.PhaseRobber:
		fmt.Printf("Commands: robber [hex [victim]] | %s\n", common)
	case game.PhaseTrade:
		fmt.Printf("Commands: trade <give> <receive> [rate] | done | end | %s\n", common)
	case game.PhaseBuild:
		fmt.Printf("Commands: road <edge> | settlement <vertex> | city <vertex> | dev buy | dev play <index> | end | %s\n", common)
	}
}

func parseResource(raw string) (game.Resource, error) {
	switch strings.ToLower(raw) {
	case "wood":
		return board.Wood, nil
	case "brick":
		return board.Brick, nil
	case "sheep":
		return board.Sheep, nil
	case "wheat":
		return board.Wheat, nil
	case "ore":
		return board.Ore, nil
	}
	return "", fmt.Errorf("unknown resource %q (wood, brick, sheep, wheat, ore)", raw)
}

func splitNames(raw string) []string {
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
