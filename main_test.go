package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tiledu/internal/app"
	"github.com/atomicstack/tiledu/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Root:          "/srv",
			Width:         80,
			Height:        24,
			MinTileWidth:  10,
			MinTileHeight: 4,
			IdleTick:      250 * time.Millisecond,
			Workers:       8,
			ShowProgress:  true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"path":    "/srv",
			"width":   "80",
			"height":  "24",
			"workers": "8",
		},
		Args: []string{"--width=80", "/srv"},
		File: "/etc/tiledu.yaml",
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["path"] != "/srv" {
		t.Fatalf("expected path flag %q, got %v", "/srv", flagsValue["path"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "/etc/tiledu.yaml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func testEnviron(t *testing.T) []string {
	t.Helper()
	return []string{"XDG_CONFIG_HOME=" + t.TempDir()}
}

func TestRunConfigErrorsExitTwo(t *testing.T) {
	cases := [][]string{
		{"--width=-1"},
		{"--no-such-flag"},
		{"one", "two"},
		{"--workers=0"},
	}
	for _, args := range cases {
		var stderr bytes.Buffer
		if code := run(context.Background(), args, testEnviron(t), &stderr); code != exitConfig {
			t.Fatalf("%v: expected exit %d, got %d (%s)", args, exitConfig, code, stderr.String())
		}
		if !strings.Contains(stderr.String(), "Configuration error") {
			t.Fatalf("%v: expected configuration error message, got %q", args, stderr.String())
		}
	}
}

func TestRunInaccessibleRootExitsOne(t *testing.T) {
	dir := t.TempDir()
	args := []string{"--progress=false", "--log-file=" + filepath.Join(dir, "tiledu.log"), filepath.Join(dir, "missing")}
	var stderr bytes.Buffer
	if code := run(context.Background(), args, testEnviron(t), &stderr); code != exitFatal {
		t.Fatalf("expected exit %d, got %d (%s)", exitFatal, code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "not accessible") {
		t.Fatalf("expected root error on stderr, got %q", stderr.String())
	}
}

func TestRunHelpExitsZero(t *testing.T) {
	var stderr bytes.Buffer
	if code := run(context.Background(), []string{"--help"}, testEnviron(t), &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stderr.String(), "--min-tile-width") {
		t.Fatalf("expected usage listing flags, got %q", stderr.String())
	}
}
