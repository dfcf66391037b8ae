package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/pomolit/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	want := "postgres://testuser@localhost:5432/testdb?sslmode=disable"
	if err := SetConnectionString(want); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != want {
		t.Errorf("GetConnectionString() = %q, want %q", got, want)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("  "); err == nil {
		t.Error("SetConnectionString(blank) should return an error")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://testuser@localhost/testdb"); err != nil {
		t.Fatal(err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want ErrNotFound", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want ErrNotFound", err)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv(constants.ConnectionEnvVar, "postgres://env@localhost/db")
		_ = SetConnectionString("postgres://keyring@localhost/db")

		got, err := ResolveConnectionString()
		if err != nil || got != "postgres://env@localhost/db" {
			t.Errorf("ResolveConnectionString() = %q, %v", got, err)
		}
	})

	t.Run("keyring fallback", func(t *testing.T) {
		t.Setenv(constants.ConnectionEnvVar, "")
		_ = SetConnectionString("postgres://keyring@localhost/db")

		got, err := ResolveConnectionString()
		if err != nil || got != "postgres://keyring@localhost/db" {
			t.Errorf("ResolveConnectionString() = %q, %v", got, err)
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv(constants.ConnectionEnvVar, "")
		_ = DeleteConnectionString()

		if _, err := ResolveConnectionString(); !errors.Is(err, ErrNoConnection) {
			t.Errorf("ResolveConnectionString() error = %v, want ErrNoConnection", err)
		}
	})
}
