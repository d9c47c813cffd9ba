package engine

import (
	"fmt"
	"sync"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
)

// DefaultPath is the engine binary looked up on PATH when none is given.
const DefaultPath = "stockfish"

// Process is an Analyzer backed by a UCI engine subprocess.
type Process struct {
	mu     sync.Mutex
	eng    *uci.Engine
	path   string
	closed bool
}

// Open starts the engine at path (DefaultPath if empty) and performs the
// UCI handshake.
func Open(path string) (*Process, error) {
	if path == "" {
		path = DefaultPath
	}
	eng, err := uci.New(path)
	if err != nil {
		return nil, fmt.Errorf("engine: start %s: %w", path, err)
	}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		eng.Close()
		return nil, fmt.Errorf("engine: handshake with %s: %w", path, err)
	}
	return &Process{eng: eng, path: path}, nil
}

// Path returns the binary the process was started from.
func (p *Process) Path() string { return p.path }

// NewGame tells the engine that following positions belong to a new game.
func (p *Process) NewGame() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.eng.Run(uci.CmdUCINewGame, uci.CmdIsReady)
}

// BestMove sends the position and a go command and waits for bestmove.
func (p *Process) BestMove(fen string, limits Limits) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return "", ErrClosed
	}

	opt, err := chess.FEN(fen)
	if err != nil {
		return "", fmt.Errorf("engine: position %q: %w", fen, err)
	}
	pos := chess.NewGame(opt).Position()

	cmdGo := uci.CmdGo{Depth: limits.Depth, MoveTime: limits.MoveTime}
	if cmdGo.Depth == 0 && cmdGo.MoveTime == 0 {
		cmdGo.Depth = 1
	}
	if err := p.eng.Run(uci.CmdPosition{Position: pos}, cmdGo); err != nil {
		return "", err
	}

	best := p.eng.SearchResults().BestMove
	if best == nil {
		return "", ErrNoMove
	}
	return best.String(), nil
}

// Close quits the engine. Further calls return ErrClosed.
func (p *Process) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.closed = true
	p.eng.Close()
	return nil
}
