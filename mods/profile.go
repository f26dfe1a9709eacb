package mods

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/TrainFun/cxc/common"
	"github.com/TrainFun/cxc/report"

	"github.com/pelletier/go-toml"
)

// BuildProfile represents the profile the compiler uses to build and run a CX
// source file.  It is returned from `LoadProfile`.
type BuildProfile struct {
	// OutputPath is the path to the output file.  If it is empty, the output
	// is written next to the source file with its extension replaced.
	OutputPath string

	// EmitMode is the kind of output the compiler should produce.  This should
	// be one of the enumerated emit modes (prefixed `Emit`).
	EmitMode int

	// LogLevel is the log level of the reporter (prefixed `report.LogLevel`).
	LogLevel int

	// Entry is the name of the function `cxc run` executes.
	Entry string

	// StepLimit is the maximum number of instructions `cxc run` executes
	// before aborting.  Zero means no limit.
	StepLimit int
}

// Enumeration of emit modes.
const (
	EmitLLVM = iota
	EmitAST
)

// emitNames maps TOML emit mode names to enumerated emit modes.
var emitNames = map[string]int{
	"llvm": EmitLLVM,
	"ast":  EmitAST,
}

// EmitModeFromName converts the name of an emit mode to its enumerated value.
func EmitModeFromName(name string) (int, bool) {
	mode, ok := emitNames[name]
	return mode, ok
}

// EmitModeName returns the name of the profile's emit mode.
func (bp *BuildProfile) EmitModeName() string {
	for name, mode := range emitNames {
		if mode == bp.EmitMode {
			return name
		}
	}

	return "unknown"
}

// OutputExt returns the default file extension for the emit mode.
func (bp *BuildProfile) OutputExt() string {
	if bp.EmitMode == EmitAST {
		return ".ast"
	}

	return ".ll"
}

// DefaultOutputPath returns the output path for the source file at srcPath:
// the configured output path if there is one, otherwise the source path with
// its extension replaced.
func (bp *BuildProfile) DefaultOutputPath(srcPath string) string {
	if bp.OutputPath != "" {
		return bp.OutputPath
	}

	return strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + bp.OutputExt()
}

// DefaultProfile returns the profile used when no profile file exists.
func DefaultProfile() *BuildProfile {
	return &BuildProfile{
		EmitMode: EmitLLVM,
		LogLevel: report.LogLevelVerbose,
		Entry:    common.DefaultEntryName,
	}
}

// -----------------------------------------------------------------------------

// tomlProfileFile represents the profile file as it is encoded in TOML.
type tomlProfileFile struct {
	Build *tomlBuild `toml:"build"`
	Run   *tomlRun   `toml:"run"`
}

// tomlBuild represents the `[build]` table.
type tomlBuild struct {
	OutputPath string `toml:"output"`
	Emit       string `toml:"emit"`
	LogLevel   string `toml:"loglevel"`
}

// tomlRun represents the `[run]` table.
type tomlRun struct {
	Entry     string `toml:"entry"`
	StepLimit int    `toml:"step-limit"`
}

// LoadProfile loads the build profile in the directory `dir`.  If the
// directory contains no profile file, the default profile is returned.
func LoadProfile(dir string) (*BuildProfile, error) {
	// open file
	f, err := os.Open(filepath.Join(dir, common.ProfileFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultProfile(), nil
		}

		return nil, err
	}
	defer f.Close()

	// unmarshal the contents
	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tpf := &tomlProfileFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, err
	}

	return convertProfile(tpf)
}

// convertProfile validates a TOML profile and converts it into a build profile.
// Omitted fields keep their default values.
func convertProfile(tpf *tomlProfileFile) (*BuildProfile, error) {
	profile := DefaultProfile()

	if tb := tpf.Build; tb != nil {
		profile.OutputPath = tb.OutputPath

		if tb.Emit != "" {
			mode, ok := EmitModeFromName(tb.Emit)
			if !ok {
				return nil, fmt.Errorf("invalid emit mode: `%s`", tb.Emit)
			}

			profile.EmitMode = mode
		}

		if tb.LogLevel != "" {
			level, ok := report.LogLevelFromName(tb.LogLevel)
			if !ok {
				return nil, fmt.Errorf("invalid log level: `%s`", tb.LogLevel)
			}

			profile.LogLevel = level
		}
	}

	if tr := tpf.Run; tr != nil {
		if tr.Entry != "" {
			profile.Entry = tr.Entry
		}

		if tr.StepLimit < 0 {
			return nil, errors.New("step limit must not be negative")
		}

		profile.StepLimit = tr.StepLimit
	}

	return profile, nil
}
