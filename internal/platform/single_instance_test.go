package platform

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestAcquireSingleInstance(t *testing.T) {
	key := fmt.Sprintf("pomolit-test-%d", time.Now().UnixNano())

	first, err := AcquireSingleInstance(key)
	if err != nil {
		t.Skipf("lock port unavailable in this environment: %v", err)
	}

	if _, err := AcquireSingleInstance(key); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second AcquireSingleInstance() error = %v, want ErrAlreadyRunning", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := first.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}

	again, err := AcquireSingleInstance(key)
	if err != nil {
		t.Fatalf("AcquireSingleInstance() after release error = %v", err)
	}
	again.Release()
}

func TestPortFor(t *testing.T) {
	for _, key := range []string{"", "pomolit", "pomolit:/tmp/a.db", "pomolit:/tmp/b.db"} {
		port := PortFor(key)
		if port < 20000 || port > 39999 {
			t.Errorf("PortFor(%q) = %d, outside range", key, port)
		}
		if PortFor(key) != port {
			t.Errorf("PortFor(%q) is not deterministic", key)
		}
	}

	var nilGuard *InstanceGuard
	if nilGuard.Release() != nil || nilGuard.Address() != "" {
		t.Error("nil guard methods should be no-ops")
	}
}
