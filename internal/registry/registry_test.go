package registry

import (
	"testing"

	"github.com/vovakirdan/ball-breaker/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult  { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState                 { return core.GameState{} }

func register(t *testing.T, id string) {
	t.Helper()
	Register(id, func() Game { return &stubGame{id: id} })
	t.Cleanup(func() {
		mu.Lock()
		defer mu.Unlock()
		delete(entries, id)
	})
}

func TestRegisterAndCreate(t *testing.T) {
	register(t, "zz-stub")

	if !Exists("zz-stub") {
		t.Fatal("Exists() = false after Register")
	}
	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("ID() = %q, expected zz-stub", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of unknown game should fail")
	}
	if info, ok := Info("zz-stub"); !ok || info.Title != "Stub zz-stub" {
		t.Errorf("Info() = %+v, %v", info, ok)
	}
}

func TestListSortedWithTitles(t *testing.T) {
	register(t, "zz-b")
	register(t, "zz-a")

	var ids []string
	for _, info := range List() {
		if info.ID == "zz-a" || info.ID == "zz-b" {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("title for %s = %q", info.ID, info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "zz-a" || ids[1] != "zz-b" {
		t.Errorf("List() order = %v, expected [zz-a zz-b]", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register(t, "zz-dup")

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
}
