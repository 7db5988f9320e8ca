package typedini

import (
	"errors"
	"net"
	"reflect"
	"strings"
	"testing"
	"time"
)

type exportSettings struct {
	Enabled   bool          `ini:"enabled"`
	Filename  string        `ini:"filename"`
	Threshold int           `ini:"threshold"`
	Ratio     float64       `ini:"ratio"`
	Columns   []string      `ini:"columns"`
	Sheets    []string      `ini:"sheets"`
	Widths    []int         `ini:"widths"`
	Timeout   time.Duration `ini:"timeout"`
	Owner     string        `ini:"owner"`
	Retries   int           `ini:"retries"`
	Target    struct {
		Name   string `ini:"name"`
		Format string `ini:"format"`
	} `ini:"target"`
}

func TestDecode(t *testing.T) {
	snap := loadFixture(t, `
[DEFAULT]
owner = reporting

[Export]
enabled = True
filename = report.xlsx
threshold = -042
ratio = 0.5
columns = A, B ,C
sheets = ["Jan", "Feb"]
widths = 10, 12
timeout = 1m30s
target = {"name": "monthly", "format": "xlsx"}
`)

	cfg := exportSettings{Retries: 3}
	if err := Decode(snap, "Export", &cfg); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if !cfg.Enabled || cfg.Filename != "report.xlsx" || cfg.Threshold != -42 || cfg.Ratio != 0.5 {
		t.Errorf("scalar fields wrong: %+v", cfg)
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(cfg.Columns, want) {
		t.Errorf("Columns = %v, want %v", cfg.Columns, want)
	}
	if want := []string{"Jan", "Feb"}; !reflect.DeepEqual(cfg.Sheets, want) {
		t.Errorf("Sheets = %v, want %v", cfg.Sheets, want)
	}
	if want := []int{10, 12}; !reflect.DeepEqual(cfg.Widths, want) {
		t.Errorf("Widths = %v, want %v", cfg.Widths, want)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Owner != "reporting" {
		t.Errorf("Owner = %q, want inherited value", cfg.Owner)
	}
	if cfg.Retries != 3 {
		t.Errorf("Retries = %d, caller default should be kept", cfg.Retries)
	}
	if cfg.Target.Name != "monthly" || cfg.Target.Format != "xlsx" {
		t.Errorf("Target = %+v", cfg.Target)
	}
}

func TestDecode_TextUnmarshaler(t *testing.T) {
	snap := loadFixture(t, "[Net]\naddr = 10.0.0.1\n")

	var cfg struct {
		Addr net.IP `ini:"addr"`
	}
	if err := Decode(snap, "Net", &cfg); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !cfg.Addr.Equal(net.ParseIP("10.0.0.1")) {
		t.Errorf("Addr = %v", cfg.Addr)
	}
}

func TestDecode_CustomTag(t *testing.T) {
	snap := loadFixture(t, "[App]\nport = 8080\n")

	var cfg struct {
		Port int `conf:"port"`
	}
	if err := Decode(snap, "App", &cfg, WithTagName("conf")); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
}

func TestDecode_Strict(t *testing.T) {
	snap := loadFixture(t, "[App]\nport = 8080\nunknown = x\n")

	var cfg struct {
		Port int `ini:"port"`
	}

	if err := Decode(snap, "App", &cfg); err != nil {
		t.Fatalf("lenient Decode() error = %v", err)
	}

	err := Decode(snap, "App", &cfg, Strict())
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown") {
		t.Errorf("error should name the unused key: %v", err)
	}
}

func TestDecode_TypeMismatch(t *testing.T) {
	snap := loadFixture(t, "[App]\nport = not-a-number\n")

	var cfg struct {
		Port int `ini:"port"`
	}
	err := Decode(snap, "App", &cfg)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if decodeErr.Section != "App" {
		t.Errorf("Section = %q", decodeErr.Section)
	}
}

func TestDecode_MissingSection(t *testing.T) {
	snap := loadFixture(t, "[App]\nport = 8080\n")

	var cfg struct{}
	if err := Decode(snap, "Other", &cfg); !errors.Is(err, ErrMissingSection) {
		t.Errorf("expected MissingSectionError, got %v", err)
	}
}

func TestDecode_NilSnapshot(t *testing.T) {
	var cfg struct{}
	if err := Decode(nil, "App", &cfg); !errors.Is(err, ErrNilSnapshot) {
		t.Errorf("expected ErrNilSnapshot, got %v", err)
	}
}

func TestDecode_NonPointer(t *testing.T) {
	snap := loadFixture(t, "[App]\nport = 8080\n")

	var cfg struct{}
	var decodeErr *DecodeError
	if err := Decode(snap, "App", cfg); !errors.As(err, &decodeErr) {
		t.Errorf("expected *DecodeError for non-pointer result, got %v", err)
	}
}
