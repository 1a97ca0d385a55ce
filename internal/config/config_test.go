package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		want string
	}{
		{SettingServer, ""},
		{SettingCommand, "vim"},
		{SettingOnStop, "auto"},
		{SettingOnPrompt, "auto"},
		{SettingTabs, "off"},
		{SettingDebug, "off"},
	}
	for _, tt := range tests {
		got, err := r.Get(tt.name)
		if err != nil {
			t.Errorf("Get(%s): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Get(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRegistrySetValidation(t *testing.T) {
	r := NewRegistry()

	if err := r.Set(SettingOnStop, "bogus"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
	// Rejected value leaves state untouched.
	if v, _ := r.Get(SettingOnStop); v != "auto" {
		t.Errorf("value = %q after rejected set, want auto", v)
	}

	if err := r.Set("no-such-setting", "on"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("error = %v, want ErrUnknownSetting", err)
	}
}

func TestRegistryCanonicalizesValues(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		set  string
		want string
	}{
		{SettingTabs, "true", "on"},
		{SettingTabs, "0", "off"},
		{SettingOnStop, "ON", "on"},
		{SettingOnPrompt, "Auto", "auto"},
	}
	for _, tt := range tests {
		if err := r.Set(tt.name, tt.set); err != nil {
			t.Fatalf("Set(%s, %s): %v", tt.name, tt.set, err)
		}
		if got, _ := r.Get(tt.name); got != tt.want {
			t.Errorf("Get(%s) = %q after Set(%s), want %q", tt.name, got, tt.set, tt.want)
		}
	}
}

func TestRegistryPrefixedNames(t *testing.T) {
	r := NewRegistry()

	if err := r.Set("vimview-server", "DEBUG1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := r.Get(SettingServer)
	if err != nil || got != "DEBUG1" {
		t.Errorf("Get(server) = %q/%v, want DEBUG1", got, err)
	}
}

func TestRegistryObserver(t *testing.T) {
	r := NewRegistry()

	var changes []Change
	r.Subscribe(func(c Change) { changes = append(changes, c) })

	if err := r.Set(SettingServer, "DEBUG1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Same value again: no notification.
	if err := r.Set(SettingServer, "DEBUG1"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	if changes[0].Name != SettingServer || changes[0].Old != "" || changes[0].New != "DEBUG1" {
		t.Errorf("change = %+v", changes[0])
	}
}

func TestRegistryDescribe(t *testing.T) {
	r := NewRegistry()
	r.Set(SettingOnStop, "on")

	got, err := r.Describe(SettingOnStop)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if got != "Vim follows frame on stop: on" {
		t.Errorf("Describe = %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server: DEBUG1\nonstop: \"on\"\ntabs: \"on\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if v, _ := r.Get(SettingServer); v != "DEBUG1" {
		t.Errorf("server = %q", v)
	}
	if v, _ := r.Get(SettingOnStop); v != "on" {
		t.Errorf("onstop = %q", v)
	}
	if !r.Bool(SettingTabs) {
		t.Error("tabs should be on")
	}
}

func TestLoadFileMissingIsNotError(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("LoadFile on missing file: %v", err)
	}
}

func TestLoadFileInvalidValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("onstop: sometimes\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadFile(path); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
}

func TestWatchFileReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: first\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadFile(path); err != nil {
		t.Fatal(err)
	}

	w, err := WatchFile(path, r, nil)
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("server: second\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if v, _ := r.Get(SettingServer); v == "second" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("server = %q, watcher never applied the change", r.String(SettingServer))
}
