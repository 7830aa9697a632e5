package registry

import (
	"testing"

	"github.com/vovakirdan/stacktower/internal/core"
)

type fakeGame struct{ id string }

func (f *fakeGame) ID() string                           { return f.id }
func (f *fakeGame) Title() string                        { return "Fake " + f.id }
func (f *fakeGame) Reset(core.RuntimeConfig)             {}
func (f *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (f *fakeGame) Render(*core.Screen)                  {}
func (f *fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_fake", func() Game { return &fakeGame{id: "zz_fake"} })
	Register("aa_fake", func() Game { return &fakeGame{id: "aa_fake"} })

	if !Exists("zz_fake") {
		t.Fatal("zz_fake should exist after Register")
	}

	g, err := Create("aa_fake")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "aa_fake" {
		t.Errorf("Create returned %q", g.ID())
	}

	list := List()
	idx := map[string]int{}
	for i, info := range list {
		idx[info.ID] = i
	}
	if idx["aa_fake"] >= idx["zz_fake"] {
		t.Errorf("List not sorted by ID: %v", list)
	}
	if list[idx["zz_fake"]].Title != "Fake zz_fake" {
		t.Errorf("unexpected title %q", list[idx["zz_fake"]].Title)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist"); err == nil {
		t.Error("expected error for unknown game")
	}
	if Exists("does_not_exist") {
		t.Error("unknown game reported as existing")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_fake", func() Game { return &fakeGame{id: "dup_fake"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("dup_fake", func() Game { return &fakeGame{id: "dup_fake"} })
}
