package mods

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/TrainFun/cxc/common"
	"github.com/TrainFun/cxc/report"
)

func writeProfile(t *testing.T, content string) string {
	dir := t.TempDir()
	if err := ioutil.WriteFile(filepath.Join(dir, common.ProfileFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	return dir
}

func TestLoadProfileMissing(t *testing.T) {
	profile, err := LoadProfile(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *profile != *DefaultProfile() {
		t.Errorf("expected default profile, got %+v", profile)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := writeProfile(t, `
[build]
output = "out/prog.ll"
emit = "ast"
loglevel = "error"

[run]
entry = "start"
step-limit = 5000
`)

	profile, err := LoadProfile(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := BuildProfile{
		OutputPath: "out/prog.ll",
		EmitMode:   EmitAST,
		LogLevel:   report.LogLevelError,
		Entry:      "start",
		StepLimit:  5000,
	}

	if *profile != want {
		t.Errorf("expected %+v, got %+v", want, *profile)
	}
}

func TestLoadProfilePartial(t *testing.T) {
	dir := writeProfile(t, "[run]\nstep-limit = 10\n")

	profile, err := LoadProfile(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Entry != common.DefaultEntryName || profile.EmitMode != EmitLLVM || profile.StepLimit != 10 {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestLoadProfileInvalid(t *testing.T) {
	tests := []string{
		"[build]\nemit = \"exe\"\n",
		"[build]\nloglevel = \"loud\"\n",
		"[run]\nstep-limit = -1\n",
		"[build\n",
	}

	for _, content := range tests {
		if _, err := LoadProfile(writeProfile(t, content)); err == nil {
			t.Errorf("%q: expected an error", content)
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	profile := DefaultProfile()
	if got := profile.DefaultOutputPath("dir/prog.cx"); got != "dir/prog.ll" {
		t.Errorf("expected dir/prog.ll, got %s", got)
	}

	profile.EmitMode = EmitAST
	if got := profile.DefaultOutputPath("prog.cx"); got != "prog.ast" {
		t.Errorf("expected prog.ast, got %s", got)
	}

	profile.OutputPath = "x.out"
	if got := profile.DefaultOutputPath("prog.cx"); got != "x.out" {
		t.Errorf("expected x.out, got %s", got)
	}
}
