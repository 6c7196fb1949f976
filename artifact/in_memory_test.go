package artifact

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/artifactmesh/core"
)

// Interface compliance (compile-time assertions)
var _ core.ArtifactStore = (*InMemoryStore)(nil)

func TestInMemoryStore_SaveGetIsolation(t *testing.T) {
	svc := NewInMemoryStore()
	data := []byte("hello")
	if _, err := svc.Save("r1", "a1", data); err != nil {
		t.Fatalf("save: %v", err)
	}
	// mutate original slice
	data[0] = 'H'
	out, err := svc.Get("r1", "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(out) != "hello" { // should not reflect mutation
		t.Fatalf("expected 'hello', got %q", string(out))
	}
	// mutate returned slice
	out[0] = 'x'
	out2, _ := svc.Get("r1", "a1")
	if string(out2) != "hello" { // original stored should be unchanged
		t.Fatalf("expected isolation, got %q", string(out2))
	}
}

func TestInMemoryStore_StatAndVersioning(t *testing.T) {
	svc := NewInMemoryStore()
	m1, err := svc.Save("r1", "a1", []byte("v1"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if m1.SizeBytes != 2 || m1.SHA256 != core.Checksum([]byte("v1")) {
		t.Fatalf("unexpected meta: %+v", m1)
	}
	st, err := svc.Stat("r1", "a1")
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Version != m1.Version {
		t.Fatalf("stat version %q != save version %q", st.Version, m1.Version)
	}
	// Overwrite produces a fresh version.
	m2, err := svc.Save("r1", "a1", []byte("v2"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if m2.Version == m1.Version {
		t.Fatalf("expected new version on overwrite")
	}
	if _, err := svc.Stat("r1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryStore_ListAndDelete(t *testing.T) {
	svc := NewInMemoryStore()
	if _, err := svc.Save("r1", "a1", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save("r1", "a2", []byte("2")); err != nil {
		t.Fatal(err)
	}
	names, err := svc.List("r1")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
	if err := svc.Delete("r1", "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get("r1", "a1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted artifact, got %v", err)
	}
	names, _ = svc.List("r1")
	if len(names) != 1 {
		t.Fatalf("expected 1 name after delete, got %d", len(names))
	}
}

func TestInMemoryStore_Concurrency(t *testing.T) {
	svc := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := i % 10
			if _, err := svc.Save("r1", fmt.Sprintf("a%d", id), []byte("data")); err != nil {
				t.Errorf("save err: %v", err)
			}
			_, _ = svc.List("r1")
		}()
	}
	wg.Wait()
	names, err := svc.List("r1")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 {
		t.Fatalf("expected some artifacts, got 0")
	}
}
