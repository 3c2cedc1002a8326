package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"wordstat-go/internal/config"
	"wordstat-go/internal/sandbox"
	"wordstat-go/pkg/wordstat"
)

func startSandbox(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := sandbox.New(sandbox.Config{Tokens: []string{"cli-token"}})
	go srv.Listener(ln) //nolint:errcheck
	t.Cleanup(func() { _ = srv.Shutdown() })
	return "http://" + ln.Addr().String() + sandbox.Path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("WORDSTAT_API_TOKEN", "")
	t.Setenv("WORDSTAT_API_URL", "")
}

// run executes the command tree with args and returns what it printed
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_MissingToken(t *testing.T) {
	clearEnv(t)
	_, err := run(t, "--url", "http://127.0.0.1:1/v4/json/", "reports")
	if !errors.Is(err, config.ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
}

func TestCLI_InvalidPhraseFailsBeforeCalling(t *testing.T) {
	clearEnv(t)
	_, err := run(t, "--url", "http://127.0.0.1:1/v4/json/", "--token", "x", "create", "--phrase", "a & b")
	if !errors.Is(err, wordstat.ErrInvalidKeyphrase) {
		t.Errorf("expected ErrInvalidKeyphrase, got %v", err)
	}
}

func TestCLI_InvalidReportID(t *testing.T) {
	clearEnv(t)
	for _, arg := range []string{"abc", "0", "-5"} {
		if _, err := run(t, "--token", "x", "report", "--", arg); err == nil {
			t.Errorf("expected error for id %q", arg)
		}
	}
}

func TestCLI_ReportWorkflow(t *testing.T) {
	clearEnv(t)
	base := []string{"--url", startSandbox(t), "--token", "cli-token", "--json"}

	out, err := run(t, append(base, "create", "--phrase", "golang", "--phrase", "go -game", "--region", "225")...)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var created map[string]int64
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("create output %q: %v", out, err)
	}
	id := strconv.FormatInt(created["report_id"], 10)

	out, err = run(t, append(base, "reports")...)
	if err != nil {
		t.Fatalf("reports: %v", err)
	}
	var statuses []map[string]any
	if err := json.Unmarshal([]byte(out), &statuses); err != nil {
		t.Fatalf("reports output %q: %v", out, err)
	}
	if len(statuses) != 1 || statuses[0]["state"] != "Done" {
		t.Errorf("statuses = %v", statuses)
	}

	out, err = run(t, append(base, "report", id)...)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	var entries []wordstat.ReportEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("report output %q: %v", out, err)
	}
	var phrases []string
	for _, e := range entries {
		phrases = append(phrases, e.Phrase)
	}
	if diff := cmp.Diff([]string{"golang", "go -game"}, phrases); diff != "" {
		t.Errorf("phrases (-want +got):\n%s", diff)
	}

	if _, err := run(t, append(base, "delete", id)...); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := run(t, append(base, "delete", id)...); !errors.Is(err, wordstat.ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}
}

func TestCLI_RegionsTable(t *testing.T) {
	clearEnv(t)
	out, err := run(t, "--url", startSandbox(t), "--token", "cli-token", "regions")
	if err != nil {
		t.Fatalf("regions: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected header and rows, got %q", out)
	}
	if fields := strings.Fields(lines[0]); strings.Join(fields, " ") != "ID PARENT NAME" {
		t.Errorf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); fields[0] != "0" || fields[1] != "-" || fields[2] != "All" {
		t.Errorf("root row = %q", lines[1])
	}
}

func TestSortRegions(t *testing.T) {
	regions := []wordstat.Region{
		{Name: "Ярославль", ID: 16},
		{Name: "Москва", ID: 213},
		{Name: "абакан", ID: 1095},
		{Name: "Ёлка", ID: 1},
	}
	if err := sortRegions(regions, "ru"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, r := range regions {
		names = append(names, r.Name)
	}
	expected := []string{"абакан", "Ёлка", "Москва", "Ярославль"}
	if diff := cmp.Diff(expected, names); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if err := sortRegions(regions, "not a tag!"); err == nil {
		t.Error("expected error for invalid language")
	}
}

func TestServeUntilDone_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- serveUntilDone(ctx, sandbox.New(sandbox.Config{}), addr)
	}()

	client := wordstat.NewClient("t", "http://"+addr+sandbox.Path)
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := client.GetRegions(context.Background()); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("sandbox never became reachable")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("sandbox did not stop after cancel")
	}
}

func TestServeUntilDone_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	err = serveUntilDone(context.Background(), sandbox.New(sandbox.Config{}), ln.Addr().String())
	if err == nil {
		t.Error("expected error when the address is taken")
	}
}
