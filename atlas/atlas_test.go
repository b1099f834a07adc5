package atlas

import (
	"errors"
	"testing"

	"github.com/gogpu/vg"
)

func newAtlas(t *testing.T, w, h int) *Atlas {
	t.Helper()
	a, err := New(Config{Width: w, Height: h})
	if err != nil {
		t.Fatalf("New(%dx%d) error: %v", w, h, err)
	}
	return a
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"default", DefaultConfig(), ""},
		{"tiny width", Config{Width: 8, Height: 64}, "Width"},
		{"huge height", Config{Width: 64, Height: MaxSize + 1}, "Height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("Validate() = %v, want ConfigError on %s", err, tt.field)
			}
		})
	}
	if _, err := New(Config{}); err == nil {
		t.Error("New(Config{}) must fail")
	}
}

func TestNextPow2(t *testing.T) {
	for in, want := range map[int]int{1: 1, 2: 2, 3: 4, 17: 32, 32: 32, 33: 64} {
		if got := nextPow2(in); got != want {
			t.Errorf("nextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestInsert_PacksRows(t *testing.T) {
	a := newAtlas(t, 64, 64)
	a.UpdateCounter()

	tests := []struct {
		id   ID
		w, h int
		want Rect
	}{
		{1, 20, 10, Rect{0, 0, 20, 10}},  // new 16-row
		{2, 20, 16, Rect{20, 0, 20, 16}}, // same 16-row
		{3, 10, 5, Rect{0, 16, 10, 5}},   // new 8-row
		{4, 30, 12, Rect{0, 24, 30, 12}}, // first 16-row is too full
	}
	for _, tt := range tests {
		got, ok := a.Insert(tt.id, tt.w, tt.h)
		if !ok || got != tt.want {
			t.Errorf("Insert(%d, %d, %d) = %+v, %v; want %+v", tt.id, tt.w, tt.h, got, ok, tt.want)
		}
	}
	if s := a.Stats(); s.Rows != 3 || s.Glyphs != 4 || s.UsedHeight != 40 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestInsert_Rejects(t *testing.T) {
	a := newAtlas(t, 64, 64)
	for _, sz := range [][2]int{{65, 1}, {1, 65}, {0, 4}} {
		if _, ok := a.Insert(9, sz[0], sz[1]); ok {
			t.Errorf("Insert(%dx%d) succeeded", sz[0], sz[1])
		}
	}
}

func TestInsert_NonPow2Height(t *testing.T) {
	a := newAtlas(t, 64, 48)
	a.UpdateCounter()

	// A 40px glyph rounds up to a 64px row, which is capped at the
	// 48px atlas height.
	if r, ok := a.Insert(1, 10, 40); !ok || r != (Rect{0, 0, 10, 40}) {
		t.Fatalf("Insert(1, 10, 40) = %+v, %v; want {0 0 10 40}, true", r, ok)
	}
	if r, ok := a.Insert(2, 10, 33); !ok || r != (Rect{10, 0, 10, 33}) {
		t.Errorf("Insert(2, 10, 33) = %+v, %v; want same row", r, ok)
	}
	if s := a.Stats(); s.Rows != 1 || s.UsedHeight != 48 {
		t.Errorf("Stats() = %+v, want one 48px row", s)
	}

	a.UpdateCounter()
	if r, ok := a.Insert(3, 60, 48); !ok || r != (Rect{0, 0, 60, 48}) {
		t.Errorf("evicting Insert(3, 60, 48) = %+v, %v", r, ok)
	}
	if _, ok := a.Get(1); ok {
		t.Error("glyph 1 survived eviction")
	}
}

func TestInsert_KeepsOrigin(t *testing.T) {
	a := newAtlas(t, 32, 32)
	a.UpdateCounter()
	a.insert(1, 32, 32, vg.V2(-1, -20))
	if _, o, ok := a.entry(1); !ok || o != vg.V2(-1, -20) {
		t.Fatalf("entry(1) origin = %v, %v", o, ok)
	}

	a.UpdateCounter()
	a.insert(2, 32, 32, vg.V2(-2, -5))
	if _, _, ok := a.entry(1); ok {
		t.Fatal("glyph 1 survived eviction")
	}
	if _, o, ok := a.entry(2); !ok || o != vg.V2(-2, -5) {
		t.Errorf("entry(2) origin = %v, %v", o, ok)
	}
}

func TestInsert_ExistingID(t *testing.T) {
	a := newAtlas(t, 64, 64)
	r1, _ := a.Insert(7, 8, 8)
	r2, ok := a.Insert(7, 8, 8)
	if !ok || r1 != r2 || a.Stats().Glyphs != 1 {
		t.Errorf("re-insert = %+v, want %+v", r2, r1)
	}
}

func TestGet(t *testing.T) {
	a := newAtlas(t, 64, 64)
	want, _ := a.Insert(5, 12, 7)
	got, ok := a.Get(5)
	if !ok || got != want {
		t.Errorf("Get(5) = %+v, %v; want %+v", got, ok, want)
	}
	if _, ok := a.Get(6); ok {
		t.Error("Get(6) hit on missing glyph")
	}
}

// Scenario: a 64×64 atlas holds four 32×32 glyphs in two rows. Once full,
// a new glyph in a later frame evicts the least recently used row.
func TestInsertEvictCycle64(t *testing.T) {
	a := newAtlas(t, 64, 64)
	a.UpdateCounter()
	for id := ID(0); id < 3; id++ {
		if _, ok := a.Insert(id, 32, 32); !ok {
			t.Fatalf("Insert(%d) failed", id)
		}
	}
	if _, ok := a.Insert(3, 32, 32); !ok {
		t.Fatal("fourth glyph must fit in the second row")
	}

	a.UpdateCounter()
	a.Get(2) // keeps the second row
	r, ok := a.Insert(4, 32, 32)
	if !ok {
		t.Fatal("Insert after fill must evict and succeed")
	}
	if r != (Rect{0, 0, 32, 32}) {
		t.Errorf("evicting insert = %+v, want first row", r)
	}
	for _, id := range []ID{0, 1} {
		if _, ok := a.Get(id); ok {
			t.Errorf("glyph %d survived eviction", id)
		}
	}
	for _, id := range []ID{2, 3, 4} {
		if _, ok := a.Get(id); !ok {
			t.Errorf("glyph %d was evicted", id)
		}
	}
	if a.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", a.Stats().Evictions)
	}
}

func TestEviction_ProtectsCurrentGeneration(t *testing.T) {
	a := newAtlas(t, 64, 64)
	a.UpdateCounter()
	for id := ID(0); id < 4; id++ {
		a.Insert(id, 32, 32)
	}
	if _, ok := a.Insert(4, 32, 32); ok {
		t.Fatal("rows used in this frame must not be evicted")
	}
	if a.Stats().Glyphs != 4 {
		t.Errorf("Glyphs = %d, want 4", a.Stats().Glyphs)
	}
}

// An atlas that holds exactly two glyphs: touching glyph 0 makes glyph 1
// the eviction victim.
func TestEviction_LRU(t *testing.T) {
	a := newAtlas(t, 32, 64)

	a.UpdateCounter()
	a.Insert(0, 32, 32)
	a.UpdateCounter()
	a.Insert(1, 32, 32)
	a.UpdateCounter()
	a.Get(0)
	a.UpdateCounter()

	if _, ok := a.Insert(2, 32, 32); !ok {
		t.Fatal("Insert(2) failed")
	}
	if _, ok := a.Get(1); ok {
		t.Error("glyph 1 should have been evicted")
	}
	if _, ok := a.Get(0); !ok {
		t.Error("glyph 0 was touched and must survive")
	}
}

func TestEviction_MergesRun(t *testing.T) {
	a := newAtlas(t, 16, 64)
	a.UpdateCounter()
	for id := ID(0); id < 4; id++ {
		a.Insert(id, 16, 16) // four 16-rows fill the height
	}
	a.UpdateCounter()
	a.Get(0)
	a.UpdateCounter()
	a.Get(0)

	// Needs 32 rows: the oldest contiguous pair that avoids row 0 is at y=16.
	r, ok := a.Insert(9, 16, 20)
	if !ok || r.Y != 16 || r.H != 20 {
		t.Fatalf("Insert = %+v, %v; want y=16", r, ok)
	}
	for _, id := range []ID{1, 2} {
		if _, ok := a.Get(id); ok {
			t.Errorf("glyph %d not evicted", id)
		}
	}
	if a.Stats().UsedHeight != 64 {
		t.Errorf("UsedHeight = %d, want 64", a.Stats().UsedHeight)
	}
}

func TestEviction_AddsFiller(t *testing.T) {
	a := newAtlas(t, 16, 96)
	a.UpdateCounter()
	a.Insert(0, 16, 16) // y=0  h=16
	a.Insert(1, 16, 32) // y=16 h=32
	a.Insert(2, 16, 16) // y=48 h=16
	a.Insert(3, 16, 32) // y=64 h=32
	a.UpdateCounter()
	a.Get(1)
	a.Get(3)
	a.UpdateCounter()

	// The run starting at y=0 (rows used at generations 1 and 2) covers 48
	// pixels; 32 are reused and the remaining 16 become a filler row.
	r, ok := a.Insert(4, 16, 32)
	if !ok || r != (Rect{0, 0, 16, 32}) {
		t.Fatalf("Insert = %+v, %v; want top of atlas", r, ok)
	}
	if s := a.Stats(); s.Rows != 4 || s.UsedHeight != 96 {
		t.Errorf("Stats() = %+v, want 4 rows covering 96", s)
	}
	r, ok = a.Insert(5, 16, 16)
	if !ok || r.Y != 32 {
		t.Errorf("Insert into filler = %+v, %v; want y=32", r, ok)
	}
}

func TestReset(t *testing.T) {
	a := newAtlas(t, 64, 64)
	a.Insert(1, 10, 10)
	a.Reset()
	if _, ok := a.Get(1); ok {
		t.Error("Get after Reset hit")
	}
	if r, _ := a.Insert(2, 10, 10); r.Y != 0 {
		t.Errorf("Insert after Reset at %+v", r)
	}
}
