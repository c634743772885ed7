package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/otfpatch"
	"github.com/npillmayer/otfpatch/normalize"
	"github.com/npillmayer/otfpatch/ot"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'otfpatch'
func tracer() tracing.Trace {
	return tracing.Select("otfpatch")
}

func main() {
	// stdout is reserved for the widths reported by 'patch'
	pterm.SetDefaultOutput(os.Stderr)

	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.1.0").
		SetDescription("Normalize the glyph widths of an OpenType font and inspect the result.")

	commando.
		Register(nil).
		AddArgument("font", "OpenType font file path (default from configuration)", "-").
		AddFlag("outdir,o", "output directory", commando.String, "-").
		AddFlag("width,w", "target advance width in font units (0 uses configuration)", commando.Int, 0).
		AddFlag("monospaced,m", "set the monospaced flag (post.isFixedPitch)", commando.Bool, nil).
		AddFlag("config,c", "NestedText configuration file", commando.String, "-").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runPatchCommand)

	commando.
		Register("patch").
		SetDescription("Set all glyph widths to a common value, set OS/2 metrics and write the patched font. Old widths of changed glyphs are printed to stdout.").
		SetShortDescription("patch glyph widths").
		AddArgument("font", "OpenType font file path (default from configuration)", "-").
		AddFlag("outdir,o", "output directory", commando.String, "-").
		AddFlag("width,w", "target advance width in font units (0 uses configuration)", commando.Int, 0).
		AddFlag("monospaced,m", "set the monospaced flag (post.isFixedPitch)", commando.Bool, nil).
		AddFlag("config,c", "NestedText configuration file", commando.String, "-").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runPatchCommand)

	commando.
		Register("check").
		SetDescription("Read a font with an independent parser and print widths, OS/2 and monospace status.").
		SetShortDescription("verify a font").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("width,w", "expected advance width (0 uses configuration)", commando.Int, 0).
		AddFlag("config,c", "NestedText configuration file", commando.String, "-").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runCheckCommand)

	commando.
		Register("font").
		SetDescription("Print diagnostics and table information for an OpenType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("tables...", "optional list of table tags (e.g. OS/2,hhea,hmtx)", "").
		AddFlag("errors,e", "print parse errors and warnings", commando.Bool, nil).
		AddFlag("names,n", "print the records of table 'name'", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runFontCommand)

	commando.
		Register("widths").
		SetDescription("List the advance widths of all glyphs of a font.").
		SetShortDescription("list glyph widths").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("width,w", "list only glyphs worth outputting with a width other than this", commando.Int, 0).
		AddFlag("histogram,H", "print a histogram of widths instead", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runWidthsCommand)

	commando.Parse(nil)
}

// --- Configuration and tracing ---------------------------------------------

// loadConfiguration reads the configuration file given by flag --config, or
// else looks for otfpatch configuration files at the usual places
// (e.g. ~/.config/otfpatch/config.nt).
func loadConfiguration(flags map[string]commando.FlagValue) schuko.Configuration {
	path := "-"
	if f, ok := flags["config"]; ok {
		path = mustFlagString(f, "config")
	}
	if path == "-" {
		conf := koanfadapter.New(nil, "otfpatch", []string{"nt"})
		conf.InitDefaults()
		return conf
	}
	k := koanf.New(".")
	conf := koanfadapter.New(k, "", nil)
	conf.InitDefaults()
	if err := k.Load(file.Provider(path), koanfadapter.Parser()); err != nil {
		fatalf("cannot read configuration %s: %v", path, err)
	}
	return conf
}

// setupTracing configures the global tracers. Levels are read from the
// configuration (keys 'trace.<tracer>'), flag --trace overrides them.
func setupTracing(conf schuko.Configuration, flags map[string]commando.FlagValue) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	level := tracing.LevelError
	if f, ok := flags["trace"]; ok {
		switch l := mustFlagString(f, "trace"); l {
		case "Debug":
			level = tracing.LevelDebug
		case "Info":
			level = tracing.LevelInfo
		case "Error":
		default:
			fatalf("invalid trace level: %s", l)
		}
	}
	for _, key := range []string{"otfpatch", "otfpatch.normalize", "font.opentype"} {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// configure reads configuration and sets up tracing. Values from command-line
// flags are put on top of the configuration.
func configure(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) normalize.Config {
	conf := loadConfiguration(flags)
	setupTracing(conf, flags)
	cfg, err := normalize.ConfigFrom(conf)
	if err != nil {
		fatalf("%v", err)
	}
	if a, ok := args["font"]; ok {
		if font := strings.TrimSpace(a.Value); font != "" && font != "-" {
			cfg.InputPath = font
		}
	}
	if f, ok := flags["outdir"]; ok {
		if dir := mustFlagString(f, "outdir"); dir != "-" {
			cfg.OutputDir = dir
		}
	}
	if f, ok := flags["width"]; ok {
		if w := mustFlagInt(f, "width"); w != 0 {
			if w < 0 || w > 0xffff {
				fatalf("--width out of range: %d", w)
			}
			cfg.TargetWidth = uint16(w)
		}
	}
	if f, ok := flags["monospaced"]; ok && mustFlagBool(f, "monospaced") {
		cfg.SetMonospaced = true
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	tracer().Debugf("configuration: %+v", cfg)
	return cfg
}

// --- Helpers ---------------------------------------------------------------

// mustLocateFont resolves a font path for the inspection commands, falling
// back to the system font directories for bare file names.
func mustLocateFont(path string) string {
	fpath, err := otfpatch.LocateFont(path)
	if err != nil {
		fatalf("cannot find font %s: %v", path, err)
	}
	return fpath
}

func mustOpenFont(path string) *normalize.Font {
	f, err := normalize.Open(path)
	if err != nil {
		fatalf("%v", err)
	}
	return f
}

func mustReadFile(path string) []byte {
	b, err := os.ReadFile(path)
	if err != nil {
		fatalf("cannot read font %s: %v", path, err)
	}
	return b
}

func mustLoadFont(path string) *ot.Font {
	otf, err := ot.Parse(mustReadFile(path))
	if err != nil {
		fatalf("cannot parse font %s: %v", path, err)
	}
	return otf
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return strings.TrimSpace(s)
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
