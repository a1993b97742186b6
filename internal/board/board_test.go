package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4KQ2 w - - 0 1",
	}
	for _, fen := range fens {
		pos := &Position{}
		if err := pos.SetFEN(fen); err != nil {
			t.Fatalf("SetFEN(%q): %v", fen, err)
		}
		got := pos.GetFEN()

		reparsed := &Position{}
		if err := reparsed.SetFEN(got); err != nil {
			t.Fatalf("SetFEN(GetFEN(%q)) = %q: %v", fen, got, err)
		}
		if reparsed.Hash != pos.Hash || reparsed.Board != pos.Board || reparsed.Side != pos.Side {
			t.Errorf("round trip mismatch: %q -> %q", fen, got)
		}
	}
}

func TestHashIdentityAcrossMakeUnmake(t *testing.T) {
	pos := NewPosition()
	var list MoveList
	GenerateMoves(pos, &list)

	played := 0
	for i := 0; i < list.Count && played < 5; i++ {
		m := list.Moves[i]
		if !MakeMove(pos, m) {
			continue
		}
		played++
		if pos.Hash != pos.ComputeHashFromScratch() {
			t.Fatalf("hash mismatch after make %s: got %d want %d", m, pos.Hash, pos.ComputeHashFromScratch())
		}
		UnmakeMove(pos, m)
		if pos.Hash != pos.ComputeHashFromScratch() {
			t.Fatalf("hash mismatch after unmake %s: got %d want %d", m, pos.Hash, pos.ComputeHashFromScratch())
		}
	}
}

func TestMakeUnmakeSymmetry(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		pos := &Position{}
		if err := pos.SetFEN(fen); err != nil {
			t.Fatalf("SetFEN(%q): %v", fen, err)
		}
		before := *pos

		var list MoveList
		GenerateMoves(pos, &list)
		for i := 0; i < list.Count; i++ {
			m := list.Moves[i]
			legal := MakeMove(pos, m)
			if !legal {
				continue
			}
			UnmakeMove(pos, m)

			if pos.Board != before.Board || pos.Hash != before.Hash ||
				pos.Material != before.Material || pos.PSTScore != before.PSTScore ||
				pos.CastleRights != before.CastleRights || pos.EPSquare != before.EPSquare ||
				pos.FiftyClock != before.FiftyClock || pos.KingSq != before.KingSq ||
				pos.UndoPly != before.UndoPly || pos.HashHistCount != before.HashHistCount {
				t.Fatalf("make/unmake asymmetry on %q after move %s", fen, m)
			}
		}
	}
}

func TestMaterialIdentity(t *testing.T) {
	pos := NewPosition()
	var list MoveList
	GenerateMoves(pos, &list)

	for i := 0; i < list.Count && i < 10; i++ {
		m := list.Moves[i]
		if !MakeMove(pos, m) {
			continue
		}
		wantMaterial, wantPST := pos.ComputeMaterialAndPST()
		if pos.Material != wantMaterial {
			t.Fatalf("material mismatch after %s: got %v want %v", m, pos.Material, wantMaterial)
		}
		if pos.PSTScore != wantPST {
			t.Fatalf("pst mismatch after %s: got %v want %v", m, pos.PSTScore, wantPST)
		}
		UnmakeMove(pos, m)
	}
}

func TestNoLegalMoveLeavesOwnKingAttacked(t *testing.T) {
	pos := NewPosition()
	var list MoveList
	GenerateMoves(pos, &list)
	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		moved := m.From
		if !MakeMove(pos, m) {
			continue
		}
		if IsSquareAttacked(pos, pos.KingSq[1-pos.Side], pos.Side) {
			t.Fatalf("move %s (from %s) left own king attacked", m, moved)
		}
		UnmakeMove(pos, m)
	}
}
