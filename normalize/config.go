package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
)

// Sentinel errors of package normalize. Errors returned by operations wrap
// one of these where applicable.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNotADirectory = errors.New("not a directory")
)

// Configuration keys, as used in configuration files.
const (
	KeyInput      = "input"
	KeyOutputDir  = "outputdir"
	KeyPrefix     = "prefix"
	KeyWidth      = "width"
	KeyOS2Version = "os2version"
	KeyPanose     = "panose"
	KeyMonospaced = "monospaced"
)

// Default values for a normalization run.
const (
	DefaultInput        = "Monego-BoldItalic.otf"
	DefaultOutputDir    = "patched"
	DefaultOutputPrefix = "Patched"
	DefaultTargetWidth  = 1229
	DefaultOS2Version   = 4
)

// DefaultPanose is the PANOSE classification written by default:
// Latin text, monospaced proportion.
var DefaultPanose = [10]byte{2, 9, 6, 3, 0, 0, 0, 0, 0, 0}

// Config holds the parameters of a normalization run.
type Config struct {
	InputPath     string   // font file to read
	OutputDir     string   // directory to write the patched font to
	OutputPrefix  string   // prepended to the input file's base name
	TargetWidth   uint16   // advance width for all glyphs worth outputting
	OS2Version    uint16   // version of table OS/2 after patching
	Panose        [10]byte // PANOSE classification after patching
	SetMonospaced bool     // set post.isFixedPitch
}

// DefaultConfig returns a configuration with all fields set to their defaults.
func DefaultConfig() Config {
	return Config{
		InputPath:    DefaultInput,
		OutputDir:    DefaultOutputDir,
		OutputPrefix: DefaultOutputPrefix,
		TargetWidth:  DefaultTargetWidth,
		OS2Version:   DefaultOS2Version,
		Panose:       DefaultPanose,
	}
}

// ConfigFrom overlays the default configuration with values found in conf.
// Keys not set in conf keep their default value. Values which cannot be
// represented result in an error wrapping ErrInvalidConfig.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	cfg := DefaultConfig()
	if conf == nil {
		return cfg, nil
	}
	if conf.IsSet(KeyInput) {
		cfg.InputPath = conf.GetString(KeyInput)
	}
	if conf.IsSet(KeyOutputDir) {
		cfg.OutputDir = conf.GetString(KeyOutputDir)
	}
	if conf.IsSet(KeyPrefix) {
		cfg.OutputPrefix = conf.GetString(KeyPrefix)
	}
	if conf.IsSet(KeyWidth) {
		w := conf.GetInt(KeyWidth)
		if w < 1 || w > 0xffff {
			return cfg, fmt.Errorf("%w: width %d out of range", ErrInvalidConfig, w)
		}
		cfg.TargetWidth = uint16(w)
	}
	if conf.IsSet(KeyOS2Version) {
		v := conf.GetInt(KeyOS2Version)
		if v < 0 || v > 0xffff {
			return cfg, fmt.Errorf("%w: OS/2 version %d out of range", ErrInvalidConfig, v)
		}
		cfg.OS2Version = uint16(v)
	}
	if conf.IsSet(KeyPanose) {
		p, err := ParsePanose(conf.GetString(KeyPanose))
		if err != nil {
			return cfg, err
		}
		cfg.Panose = p
	}
	if conf.IsSet(KeyMonospaced) {
		cfg.SetMonospaced = conf.GetBool(KeyMonospaced)
	}
	return cfg, nil
}

// Validate checks a configuration for values a run cannot work with.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.InputPath) == "" {
		return fmt.Errorf("%w: input path is empty", ErrInvalidConfig)
	}
	if cfg.TargetWidth == 0 {
		return fmt.Errorf("%w: target width must be positive", ErrInvalidConfig)
	}
	if cfg.OS2Version > 5 {
		return fmt.Errorf("%w: OS/2 version %d not supported", ErrInvalidConfig, cfg.OS2Version)
	}
	return nil
}

// ParsePanose parses a PANOSE classification, given as ten decimal numbers
// separated by commas or spaces, e.g. "2,9,6,3,0,0,0,0,0,0".
func ParsePanose(s string) ([10]byte, error) {
	var panose [10]byte
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != len(panose) {
		return panose, fmt.Errorf("%w: PANOSE needs 10 entries, have %d", ErrInvalidConfig, len(fields))
	}
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return panose, fmt.Errorf("%w: PANOSE entry %d: %v", ErrInvalidConfig, i, err)
		}
		panose[i] = byte(n)
	}
	return panose, nil
}

// PanoseString formats a PANOSE classification the way ParsePanose reads it.
func PanoseString(panose [10]byte) string {
	parts := make([]string, len(panose))
	for i, p := range panose {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, ",")
}
