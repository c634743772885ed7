package normalize

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "Monego-BoldItalic.otf", cfg.InputPath)
	assert.Equal(t, "patched", cfg.OutputDir)
	assert.Equal(t, "Patched", cfg.OutputPrefix)
	assert.Equal(t, uint16(1229), cfg.TargetWidth)
	assert.Equal(t, uint16(4), cfg.OS2Version)
	assert.Equal(t, [10]byte{2, 9, 6, 3, 0, 0, 0, 0, 0, 0}, cfg.Panose)
	assert.False(t, cfg.SetMonospaced, "monospaced flag is off by default")
	assert.NoError(t, cfg.Validate())
}

func TestConfigFrom(t *testing.T) {
	conf := testconfig.Conf{
		KeyInput:      "Mono.ttf",
		KeyWidth:      "1000",
		KeyPanose:     "2 11 6 9 0 0 0 0 0 0",
		KeyMonospaced: "true",
	}
	cfg, err := ConfigFrom(conf)
	require.NoError(t, err)
	assert.Equal(t, "Mono.ttf", cfg.InputPath)
	assert.Equal(t, uint16(1000), cfg.TargetWidth)
	assert.Equal(t, [10]byte{2, 11, 6, 9}, cfg.Panose)
	assert.True(t, cfg.SetMonospaced)
	assert.Equal(t, "patched", cfg.OutputDir, "unset keys keep their default")
	assert.Equal(t, uint16(4), cfg.OS2Version)
	//
	cfg, err = ConfigFrom(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFromInvalid(t *testing.T) {
	for name, conf := range map[string]testconfig.Conf{
		"width zero":     {KeyWidth: "0"},
		"width too wide": {KeyWidth: "70000"},
		"short panose":   {KeyPanose: "2,9,6,3"},
		"panose entry":   {KeyPanose: "2,9,6,3,0,0,0,0,0,256"},
		"os2 version":    {KeyOS2Version: "-1"},
	} {
		_, err := ConfigFrom(conf)
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputPath = "  "
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg = DefaultConfig()
	cfg.TargetWidth = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg = DefaultConfig()
	cfg.OS2Version = 6
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestPanoseString(t *testing.T) {
	assert.Equal(t, "2,9,6,3,0,0,0,0,0,0", PanoseString(DefaultPanose))
	p, err := ParsePanose(PanoseString(DefaultPanose))
	require.NoError(t, err)
	assert.Equal(t, DefaultPanose, p)
}
