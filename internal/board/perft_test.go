package board

import "testing"

func TestPerft(t *testing.T) {
	cases := []struct {
		name   string
		fen    string
		counts []uint64 // index i = perft(i+1)
	}{
		{
			name:   "startpos",
			fen:    StartFEN,
			counts: []uint64{20, 400, 8902, 197281},
		},
		{
			name:   "kiwipete",
			fen:    "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			counts: []uint64{48, 2039, 97862},
		},
		{
			name:   "endgame pawn/ep",
			fen:    "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			counts: []uint64{14, 191, 2812},
		},
		{
			name:   "castling edge",
			fen:    "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			counts: []uint64{6, 264, 9467},
		},
		{
			name:   "tactical",
			fen:    "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			counts: []uint64{44, 1486, 62379},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos := &Position{}
			if err := pos.SetFEN(c.fen); err != nil {
				t.Fatalf("SetFEN(%q): %v", c.fen, err)
			}
			for i, want := range c.counts {
				depth := i + 1
				got := Perft(pos, depth)
				if got != want {
					t.Errorf("perft(%d) = %d, want %d", depth, got, want)
				}
			}
		})
	}
}
