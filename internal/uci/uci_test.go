package uci

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
)

type fakeEngine struct {
	reply  string
	fens   []string
	limits []engine.Limits
	closed bool
}

func (f *fakeEngine) BestMove(fen string, limits engine.Limits) (string, error) {
	f.fens = append(f.fens, fen)
	f.limits = append(f.limits, limits)
	if f.reply == "" {
		return "", engine.ErrNoMove
	}
	return f.reply, nil
}

func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

func run(t *testing.T, a engine.Analyzer, script string) (*UCI, string) {
	t.Helper()
	var out bytes.Buffer
	u := New(a, engine.Limits{MoveTime: 250 * time.Millisecond}, strings.NewReader(script), &out)
	if err := u.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return u, out.String()
}

func bestmoves(out string) []string {
	var moves []string
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "bestmove "); ok {
			moves = append(moves, rest)
		}
	}
	return moves
}

func TestHandshake(t *testing.T) {
	f := &fakeEngine{}
	_, out := run(t, f, "uci\nisready\nquit\n")
	for _, want := range []string{"id name chessrules", "option name EnginePath", "uciok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if !f.closed {
		t.Error("engine not closed on quit")
	}
}

func TestGoRelaysLegalEngineMove(t *testing.T) {
	f := &fakeEngine{reply: "d1h5"}
	_, out := run(t, f, "position startpos moves e2e4 e7e5\ngo depth 3\n")

	if diff := cmp.Diff([]string{"d1h5"}, bestmoves(out)); diff != "" {
		t.Errorf("bestmove (-want +got):\n%s", diff)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	if len(f.fens) != 1 || f.fens[0] != want {
		t.Errorf("engine saw %v, want %s", f.fens, want)
	}
	if f.limits[0] != (engine.Limits{Depth: 3}) {
		t.Errorf("limits = %+v", f.limits[0])
	}
}

func TestGoFallsBackOnBadEngineMove(t *testing.T) {
	tests := []struct {
		name  string
		a     engine.Analyzer
		wants string
	}{
		{"illegal", &fakeEngine{reply: "e2e5"}, "Engine move rejected"},
		{"silent", &fakeEngine{}, "Engine move rejected"},
		{"no engine", nil, "No engine configured"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, out := run(t, tc.a, "position startpos\ngo movetime 100\n")
			if diff := cmp.Diff([]string{"a2a3"}, bestmoves(out)); diff != "" {
				t.Errorf("bestmove (-want +got):\n%s", diff)
			}
			if !strings.Contains(out, "info string "+tc.wants) {
				t.Errorf("missing diagnostic %q in:\n%s", tc.wants, out)
			}
		})
	}
}

func TestGoAsksEngineInDrawnPosition(t *testing.T) {
	tests := []struct {
		name   string
		script string
		reply  string
	}{
		{"FiftyMove", "position fen 7k/8/8/8/8/8/R7/K7 w - - 100 80\ngo depth 2\n", "a2g2"},
		{"Threefold", "position startpos moves g1f3 g8f6 f3g1 f6g8 g1f3 g8f6 f3g1 f6g8\ngo depth 2\n", "d2d4"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeEngine{reply: tc.reply}
			u, out := run(t, f, tc.script)
			if !u.Game().Status().IsDraw() {
				t.Fatalf("status = %v, want a draw", u.Game().Status())
			}
			if diff := cmp.Diff([]string{tc.reply}, bestmoves(out)); diff != "" {
				t.Errorf("bestmove (-want +got):\n%s", diff)
			}
			if len(f.fens) != 1 {
				t.Errorf("engine asked %d times, want 1", len(f.fens))
			}
		})
	}
}

func TestGoWithoutLegalMoves(t *testing.T) {
	f := &fakeEngine{reply: "e1f2"}
	_, out := run(t, f, "position startpos moves f2f3 e7e5 g2g4 d8h4\ngo\n")
	if diff := cmp.Diff([]string{"0000"}, bestmoves(out)); diff != "" {
		t.Errorf("bestmove (-want +got):\n%s", diff)
	}
	if len(f.fens) != 0 {
		t.Error("engine consulted in a mated position")
	}
}

func TestInvalidPositionKeepsPrevious(t *testing.T) {
	after := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	script := strings.Join([]string{
		"position startpos moves e2e4",
		"position startpos moves e2e4 e2e4",
		"position fen 8/8/8/8 w - - 0 1",
		"position fen 4k3/8/8/8/8/8/8/8 w - - 0 1",
		"position sideways",
		"position",
	}, "\n")
	u, out := run(t, nil, script)

	if got := u.Game().FEN(); got != after {
		t.Errorf("FEN = %s, want %s", got, after)
	}
	for _, want := range []string{"Invalid move", "Invalid FEN", "Invalid position"} {
		if !strings.Contains(out, "info string "+want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPositionFEN(t *testing.T) {
	u, _ := run(t, nil, "position fen 4k3/8/8/8/8/8/4P3/4K3 w - - 0 1 moves e2e4 e8d7\n")
	if got, want := u.Game().FEN(), "8/3k4/8/8/4P3/8/8/4K3 w - - 1 2"; got != want {
		t.Errorf("FEN = %s, want %s", got, want)
	}
}

func TestClockBecomesMoveTime(t *testing.T) {
	f := &fakeEngine{reply: "e7e5"}
	_, out := run(t, f, "position startpos moves e2e4\ngo wtime 1000 btime 60000 movestogo 20\n")
	if diff := cmp.Diff([]string{"e7e5"}, bestmoves(out)); diff != "" {
		t.Errorf("bestmove (-want +got):\n%s", diff)
	}
	// Black to move at ply 1: 60s / 20, with the opening discount.
	want := 60 * time.Second / 20 * 85 / 100
	if len(f.limits) != 1 || f.limits[0].MoveTime != want {
		t.Errorf("limits = %+v, want movetime %v", f.limits, want)
	}
}

func TestDefaultsAndSetOption(t *testing.T) {
	f := &fakeEngine{reply: "e2e4"}
	opened := ""
	var out bytes.Buffer
	script := strings.Join([]string{
		"setoption name MoveTime value 1500",
		"setoption name Depth value 9",
		"go",
		"setoption name EnginePath value /opt/engines/fake",
		"setoption name Depth value deep",
		"setoption name Colour value red",
		"go",
	}, "\n")
	u := New(nil, engine.Limits{}, strings.NewReader(script), &out)
	u.SetOpener(func(path string) (engine.Analyzer, error) {
		opened = path
		return f, nil
	})
	if err := u.Run(); err != nil {
		t.Fatal(err)
	}

	if opened != "/opt/engines/fake" {
		t.Errorf("opener called with %q", opened)
	}
	if diff := cmp.Diff([]string{"a2a3", "e2e4"}, bestmoves(out.String())); diff != "" {
		t.Errorf("bestmove (-want +got):\n%s", diff)
	}
	if want := (engine.Limits{Depth: 9, MoveTime: 1500 * time.Millisecond}); len(f.limits) != 1 || f.limits[0] != want {
		t.Errorf("limits = %+v, want %+v", f.limits, want)
	}
	for _, want := range []string{"Invalid Depth", "Unknown option: Colour"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestEnginePathFailure(t *testing.T) {
	var out bytes.Buffer
	u := New(nil, engine.Limits{}, strings.NewReader("setoption name EnginePath value nowhere\n"), &out)
	u.SetOpener(func(string) (engine.Analyzer, error) { return nil, errors.New("exec: not found") })
	if err := u.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Failed to start engine") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestPerftAndDisplay(t *testing.T) {
	_, out := run(t, nil, "perft 2\nd\nperft x\n")
	if !strings.Contains(out, "Nodes searched: 400") {
		t.Errorf("perft output:\n%s", out)
	}
	if !strings.Contains(out, "e2e4: 20") {
		t.Errorf("divide line missing:\n%s", out)
	}
	if !strings.Contains(out, "FEN: "+board.StartFEN) || !strings.Contains(out, "Status: ongoing") {
		t.Errorf("display output:\n%s", out)
	}
	if !strings.Contains(out, "Invalid perft depth") {
		t.Errorf("bad depth not reported:\n%s", out)
	}
}

func TestParseGoOptions(t *testing.T) {
	tests := []struct {
		args string
		want GoOptions
	}{
		{"", GoOptions{}},
		{"depth 7", GoOptions{Depth: 7}},
		{"movetime 1500", GoOptions{MoveTime: 1500 * time.Millisecond}},
		{"infinite", GoOptions{Infinite: true}},
		{"wtime 300000 btime 290000 winc 2000 binc 1000 movestogo 12", GoOptions{Clock: engine.Clock{
			Time:      [2]time.Duration{300 * time.Second, 290 * time.Second},
			Inc:       [2]time.Duration{2 * time.Second, time.Second},
			MovesToGo: 12,
		}}},
		{"ponder depth 4 nodes 100", GoOptions{Depth: 4}},
		{"depth", GoOptions{}},
	}
	for _, tc := range tests {
		got := ParseGoOptions(strings.Fields(tc.args))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("ParseGoOptions(%q) (-want +got):\n%s", tc.args, diff)
		}
	}
}
