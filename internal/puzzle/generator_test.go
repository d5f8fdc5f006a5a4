package puzzle

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/calc-climb/internal/calc"
	"github.com/vovakirdan/calc-climb/internal/core"
	"github.com/vovakirdan/calc-climb/internal/rng"
)

func TestDeterminism(t *testing.T) {
	for tier := 0; tier <= MaxTier; tier++ {
		for _, seed := range []int64{0, 1, 42, 777, 123456789, 999999998} {
			a := Generate(tier, seed)
			b := Generate(tier, seed)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("Generate(%d, %d) not reproducible", tier, seed)
			}
		}
	}
}

type goldenTile struct {
	tok Token
	pos core.Vec
}

func goldenNum(v int, x, y float64) goldenTile {
	return goldenTile{Token{Kind: calc.KindNumber, Value: v}, core.Vec{X: x, Y: y}}
}

func goldenOp(op calc.Op, x, y float64) goldenTile {
	return goldenTile{Token{Kind: calc.KindOperator, Op: op}, core.Vec{X: x, Y: y}}
}

func TestGoldenLevels(t *testing.T) {
	tests := []struct {
		tier   int
		seed   int64
		target int
		tiles  []goldenTile
	}{
		{
			tier: 1, seed: 42, target: 10,
			tiles: []goldenTile{
				goldenNum(4, 520, 400), goldenOp(calc.OpAdd, 720, 256), goldenNum(6, 380, 544),
				goldenOp(calc.OpMul, 800, 400), goldenNum(2, 60, 400), goldenOp(calc.OpDiv, 360, 400),
				goldenOp(calc.OpMul, 120, 256), goldenNum(5, 420, 256), goldenNum(9, 200, 544),
				goldenOp(calc.OpAdd, 740, 544), goldenOp(calc.OpSub, 560, 544),
			},
		},
		{
			tier: 7, seed: 2024, target: 3,
			tiles: []goldenTile{
				goldenNum(2, 560, 544), goldenOp(calc.OpDiv, 360, 400), goldenNum(2, 420, 256),
				goldenOp(calc.OpMul, 60, 400), goldenNum(3, 740, 544), goldenOp(calc.OpMul, 200, 544),
				goldenNum(7, 520, 400), goldenNum(3, 380, 544), goldenOp(calc.OpDiv, 120, 256),
				goldenNum(6, 800, 400), goldenNum(1, 720, 256),
			},
		},
		{
			// 3 - 2 leaves 1, so the second subtraction becomes + 1.
			tier: 3, seed: 23, target: 2,
		},
	}
	for _, tt := range tests {
		lvl := Generate(tt.tier, tt.seed)
		if lvl.Target != tt.target {
			t.Errorf("Generate(%d, %d).Target = %d, want %d", tt.tier, tt.seed, lvl.Target, tt.target)
		}
		if tt.tiles == nil {
			continue
		}
		if len(lvl.Tiles) != len(tt.tiles) {
			t.Fatalf("Generate(%d, %d): %d tiles, want %d", tt.tier, tt.seed, len(lvl.Tiles), len(tt.tiles))
		}
		for i, want := range tt.tiles {
			got := lvl.Tiles[i]
			if got.ID != i || got.Token() != want.tok || got.Pos != want.pos {
				t.Errorf("Generate(%d, %d) tile %d = %v at %v, want %v at %v",
					tt.tier, tt.seed, i, got.Token(), got.Pos, want.tok, want.pos)
			}
		}
	}
}

func TestSubtractionNeverDropsBelowOne(t *testing.T) {
	lvl := Generate(3, 23)
	want := []Token{
		{Kind: calc.KindNumber, Value: 3},
		{Kind: calc.KindOperator, Op: calc.OpSub},
		{Kind: calc.KindNumber, Value: 2},
		{Kind: calc.KindOperator, Op: calc.OpAdd},
		{Kind: calc.KindNumber, Value: 1},
	}
	for i, tok := range want {
		if got := lvl.Tiles[i].Token(); got != tok {
			t.Errorf("solution token %d = %v, want %v", i, got, tok)
		}
	}
}

func TestSolutionChainEvaluatesToTarget(t *testing.T) {
	for tier := 0; tier <= MaxTier; tier++ {
		for seed := int64(0); seed < 500; seed++ {
			g := rng.New(seed)
			c, target := buildChain(g, tier)
			got, ok := Evaluate(c.tokens())
			if !ok {
				t.Fatalf("tier %d seed %d: chain %s rejected", tier, seed, Expression(c.tokens()))
			}
			if got != target {
				t.Fatalf("tier %d seed %d: %s = %d, target %d", tier, seed, Expression(c.tokens()), got, target)
			}
		}
	}
}

func TestOperandBounds(t *testing.T) {
	for tier := 0; tier <= MaxTier; tier++ {
		for seed := int64(0); seed < 500; seed++ {
			c, _ := buildChain(rng.New(seed), tier)

			cur := c.nums[0]
			for i, op := range c.ops {
				n := c.nums[i+1]
				if n < 1 || n > 9 {
					t.Fatalf("tier %d seed %d: operand %d out of range", tier, seed, n)
				}
				cur, _ = calc.Apply(op, cur, n)
				if cur < 1 || cur > 99 {
					t.Fatalf("tier %d seed %d: running value %d out of [1, 99]", tier, seed, cur)
				}
			}

			lvl := Generate(tier, seed)
			for _, tile := range lvl.Tiles {
				if tile.Kind == calc.KindNumber && (tile.Value < 1 || tile.Value > 9) {
					t.Fatalf("tier %d seed %d: number tile %d out of range", tier, seed, tile.Value)
				}
			}
			if lvl.Target < 1 {
				t.Fatalf("tier %d seed %d: target %d", tier, seed, lvl.Target)
			}
		}
	}
}

func TestOperatorsFollowTier(t *testing.T) {
	tests := []struct {
		tier    int
		allowed []calc.Op
		length  int
	}{
		{0, []calc.Op{calc.OpAdd, calc.OpSub}, 2},
		{2, []calc.Op{calc.OpAdd, calc.OpSub}, 2},
		{3, []calc.Op{calc.OpAdd, calc.OpSub, calc.OpMul}, 3},
		{6, calc.AllOps, 3},
		{40, calc.AllOps, 3},
	}

	for _, tc := range tests {
		for seed := int64(0); seed < 200; seed++ {
			c, _ := buildChain(rng.New(seed), core.Clamp(tc.tier, 0, MaxTier))
			if len(c.nums) != tc.length {
				t.Fatalf("tier %d: chain length %d, expected %d", tc.tier, len(c.nums), tc.length)
			}
			for _, op := range c.ops {
				found := false
				for _, a := range tc.allowed {
					if a == op {
						found = true
					}
				}
				if !found {
					t.Fatalf("tier %d seed %d: operator %v not allowed", tc.tier, seed, op)
				}
			}
		}
	}
}

func TestSolutionPlacedFirst(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		lvl := Generate(7, seed)
		c, _ := buildChain(rng.New(seed), 7)
		want := c.tokens()
		for i, tok := range want {
			if lvl.Tiles[i].Token() != tok {
				t.Fatalf("seed %d: tile %d = %v, expected %v", seed, i, lvl.Tiles[i].Token(), tok)
			}
		}
	}
}

func TestStableIDsAndLayout(t *testing.T) {
	lvl := Generate(4, 99)
	spots := make(map[core.Vec]bool)
	for _, s := range DropSpots() {
		spots[s] = true
	}
	for i, tile := range lvl.Tiles {
		if tile.ID != i {
			t.Errorf("tile %d has ID %d", i, tile.ID)
		}
		if !spots[tile.Pos] {
			t.Errorf("tile %d at %v is not a drop spot", i, tile.Pos)
		}
		delete(spots, tile.Pos)
	}
	if len(lvl.Platforms) != 7 || len(lvl.Ladders) != 5 {
		t.Errorf("layout has %d platforms, %d ladders", len(lvl.Platforms), len(lvl.Ladders))
	}
	if lvl.PlayerStart != (core.Vec{X: 60, Y: 552}) {
		t.Errorf("PlayerStart = %v", lvl.PlayerStart)
	}
}

func TestTierClamp(t *testing.T) {
	if got := Generate(-3, 5); got.Tier != 0 {
		t.Errorf("negative tier clamped to %d", got.Tier)
	}
	if !reflect.DeepEqual(Generate(50, 5).Tiles, Generate(MaxTier, 5).Tiles) {
		t.Error("tiers above the maximum should match the maximum")
	}
}

func TestSmallPoolTruncatesSolution(t *testing.T) {
	sol := []Token{
		{Kind: calc.KindNumber, Value: 4},
		{Kind: calc.KindOperator, Op: calc.OpAdd},
		{Kind: calc.KindNumber, Value: 5},
	}
	spots := []core.Vec{{X: 1, Y: 1}, {X: 2, Y: 2}}

	tiles := placeTiles(rng.New(1), sol, spots)
	if len(tiles) != 2 {
		t.Fatalf("expected 2 tiles, got %d", len(tiles))
	}
	if tiles[0].Token() != sol[0] || tiles[1].Token() != sol[1] {
		t.Errorf("tiles = %v, %v", tiles[0].Token(), tiles[1].Token())
	}
}

func TestCollectAndFind(t *testing.T) {
	lvl := Generate(0, 8)
	first := lvl.Tiles[0]

	id, ok := lvl.FindTile(first.Pos, first.Token())
	if !ok || id != 0 {
		t.Fatalf("FindTile = %d, %v", id, ok)
	}
	if !lvl.Collect(0) {
		t.Fatal("first collect should succeed")
	}
	if lvl.Collect(0) {
		t.Error("second collect should be a no-op")
	}
	if _, ok := lvl.FindTile(first.Pos, first.Token()); ok {
		t.Error("collected tile should not be found")
	}
	if lvl.Remaining() != len(lvl.Tiles)-1 {
		t.Errorf("Remaining = %d", lvl.Remaining())
	}
	if lvl.Collect(99) {
		t.Error("unknown id should not collect")
	}
}
