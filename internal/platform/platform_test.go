package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	first := portFromName("DialTimer")
	if first != portFromName("DialTimer") {
		t.Fatalf("port must be deterministic")
	}
	if first < 20000 || first > 39999 {
		t.Fatalf("got port %d, want [20000, 39999]", first)
	}
}

func TestSecondInstanceActivatesFirst(t *testing.T) {
	name := fmt.Sprintf("dialtimer-test-%d", time.Now().UnixNano())
	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()

	activated := make(chan struct{}, 1)
	guard.OnActivate(func() { activated <- struct{}{} })

	if _, err := AcquireSingleInstance(name); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("got %v, want ErrAlreadyRunning", err)
	}
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatalf("first instance was not activated")
	}
}

func TestReleaseFreesPort(t *testing.T) {
	name := fmt.Sprintf("dialtimer-release-%d", time.Now().UnixNano())
	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	if err := guard.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	again, err := AcquireSingleInstance(name)
	if err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	again.Release()
}

func TestDataDirUsesNormalizedName(t *testing.T) {
	dir, err := DataDir("Dial Timer")
	if err != nil {
		t.Skipf("no config dir: %v", err)
	}
	if filepath.Base(dir) != "dial-timer" {
		t.Fatalf("got %s, want dial-timer suffix", dir)
	}
}
