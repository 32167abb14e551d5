package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pontaoski/cfront/parser"
	"github.com/pontaoski/cfront/types"
	"github.com/urfave/cli/v2"
)

// captureStderr runs f with os.Stderr and the log output redirected.
func captureStderr(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stderr := os.Stderr
	os.Stderr = w
	log.SetOutput(w)
	defer func() {
		os.Stderr = stderr
		log.SetOutput(stderr)
	}()

	f()
	w.Close()
	out, err := ioutil.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("cfront", flag.ContinueOnError)
	set.Bool("trace", false, "")
	set.Bool("no-color", false, "")
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestCheckReportsEachFailureOnce(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.c")
	bad := filepath.Join(dir, "bad.c")
	if err := ioutil.WriteFile(good, []byte("int main(void) { return 0; }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(bad, []byte("int x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	var err error
	out := captureStderr(t, func() {
		err = checkAction(newContext(t, good, bad))
	})
	if err == nil || err.Error() != "1 of 2 files failed to parse" {
		t.Errorf("checkAction returned %v", err)
	}
	if n := strings.Count(out, "error: Expected ';', but found end of file"); n != 1 {
		t.Errorf("diagnostic printed %d times:\n%s", n, out)
	}
	if strings.Contains(out, "compilation failed") {
		t.Errorf("failure reported twice:\n%s", out)
	}
}

func TestPrintError(t *testing.T) {
	src := types.NewSource("t.c", "int x = 1")
	c := newContext(t)

	var printed bool
	out := captureStderr(t, func() {
		printed = printError(c, src, fmt.Errorf("disk on fire"))
	})
	if printed || out != "" {
		t.Errorf("plain error: printed = %v, output %q", printed, out)
	}

	_, perr := parser.Parse(src.Text)
	out = captureStderr(t, func() {
		printed = printError(c, src, perr)
	})
	if !printed || !strings.HasPrefix(out, "t.c:1:10: error: ") {
		t.Errorf("diagnostic: printed = %v, output %q", printed, out)
	}
	var err error
	captureStderr(t, func() {
		err = report(c, src, perr)
	})
	if err == nil || err.Error() != "t.c: compilation failed" {
		t.Errorf("report returned %v", err)
	}
}
