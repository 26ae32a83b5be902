package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

type placeSpec struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func (s *placeSpec) Validate() error {
	return nil
}

func writeAsset(t *testing.T, dir, file string, asset any) {
	t.Helper()

	data, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("marshalling asset: %v", err)
	}
	err = os.WriteFile(filepath.Join(dir, file), data, 0644)
	if err != nil {
		t.Fatalf("writing asset: %v", err)
	}
}

func TestNewFileStore(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, dir string)
		expKeys  []string
		expErr   string
		noExists bool
	}{
		"empty directory": {
			setup:   func(t *testing.T, dir string) {},
			expKeys: []string{},
		},
		"loads nested assets": {
			setup: func(t *testing.T, dir string) {
				sub := filepath.Join(dir, "east-wing")
				if err := os.Mkdir(sub, 0755); err != nil {
					t.Fatalf("creating subdir: %v", err)
				}
				writeAsset(t, dir, "lobby.json", Asset[*placeSpec]{Version: 1, Identifier: "lobby", Spec: &placeSpec{Title: "Lobby"}})
				writeAsset(t, sub, "breakroom.json", Asset[*placeSpec]{Version: 1, Identifier: "breakroom", Spec: &placeSpec{Title: "Breakroom"}})
			},
			expKeys: []string{"breakroom", "lobby"},
		},
		"ignores non json files": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "lobby.json", Asset[*placeSpec]{Version: 1, Identifier: "lobby", Spec: &placeSpec{Title: "Lobby"}})
				if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an asset"), 0644); err != nil {
					t.Fatalf("writing file: %v", err)
				}
			},
			expKeys: []string{"lobby"},
		},
		"invalid json": {
			setup: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"version":`), 0644); err != nil {
					t.Fatalf("writing file: %v", err)
				}
			},
			expErr: "loading bad.json: unmarshalling asset",
		},
		"missing version": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "lobby.json", Asset[*placeSpec]{Identifier: "lobby", Spec: &placeSpec{}})
			},
			expErr: "version must be set",
		},
		"missing spec": {
			setup: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, "lobby.json"), []byte(`{"version":1,"id":"lobby"}`), 0644); err != nil {
					t.Fatalf("writing file: %v", err)
				}
			},
			expErr: "spec must be set",
		},
		"duplicate id": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "a.json", Asset[*placeSpec]{Version: 1, Identifier: "lobby", Spec: &placeSpec{}})
				writeAsset(t, dir, "b.json", Asset[*placeSpec]{Version: 1, Identifier: "lobby", Spec: &placeSpec{}})
			},
			expErr: "duplicate key detected: lobby",
		},
		"missing directory": {
			noExists: true,
			expErr:   "no such file or directory",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.noExists {
				dir = filepath.Join(dir, "missing")
			} else {
				tt.setup(t, dir)
			}

			store, err := NewFileStore[*placeSpec](dir)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "keys", store.Keys(), tt.expKeys)
		})
	}
}

func TestFileStore_Get(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "lobby.json", Asset[*placeSpec]{
		Version:    1,
		Identifier: "lobby",
		Spec:       &placeSpec{Title: "Lobby", Tags: []string{"hub"}},
	})

	store, err := NewFileStore[*placeSpec](dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := store.Get("lobby")
	if got == nil {
		t.Fatal("expected lobby to be loaded")
	}
	testutil.AssertEqual(t, "title", got.Title, "Lobby")
	testutil.AssertEqual(t, "tags", got.Tags, []string{"hub"})

	if store.Get("basement") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestFileStore_GetAllReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "lobby.json", Asset[*placeSpec]{Version: 1, Identifier: "lobby", Spec: &placeSpec{}})
	writeAsset(t, dir, "closet.json", Asset[*placeSpec]{Version: 1, Identifier: "closet", Spec: &placeSpec{}})

	store, err := NewFileStore[*placeSpec](dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := store.GetAll()
	testutil.AssertEqual(t, "count", len(all), 2)

	delete(all, "lobby")
	testutil.AssertEqual(t, "store count after mutating copy", len(store.GetAll()), 2)
}
