package ui_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/geoascii/pkg/config"
	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/style"
	"github.com/arthur-debert/geoascii/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	assert.Equal(t, "auto", ui.FormatAuto.String())
	assert.Equal(t, "term", ui.FormatTerminal.String())
	assert.Equal(t, "text", ui.FormatText.String())
	assert.Equal(t, "unknown", ui.Format(99).String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"", ui.FormatAuto, false},
		{"AUTO", ui.FormatAuto, false},
		{"terminal", ui.FormatTerminal, false},
		{"plain", ui.FormatText, false},
		{"json", ui.FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFromColorMode(t *testing.T) {
	assert.Equal(t, ui.FormatTerminal, ui.FromColorMode(config.ColorAlways))
	assert.Equal(t, ui.FormatText, ui.FromColorMode(config.ColorNever))
	assert.Equal(t, ui.FormatAuto, ui.FromColorMode(config.ColorAuto))
}

func TestDetectFormat(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	t.Run("regular file is text", func(t *testing.T) {
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})

	t.Run("NO_COLOR wins", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})
}

func TestResolve(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatAuto, &buf))
	assert.Equal(t, ui.FormatTerminal, ui.Resolve(ui.FormatTerminal, &buf))
	assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatText, &buf))
}

func TestLinePrompter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []bool
	}{
		{"enter continues", "\n\n", []bool{true, true}},
		{"q stops", "\nq\n", []bool{true, false}},
		{"upper case Q stops", "Q\n", []bool{false}},
		{"other text continues", "next\n", []bool{true}},
		{"end of input stops", "", []bool{false}},
		{"last line without newline", "q", []bool{false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := ui.NewLinePrompter(strings.NewReader(tt.input), &out, ui.FormatText)
			for i, want := range tt.want {
				got, err := p.Next()
				require.NoError(t, err)
				assert.Equal(t, want, got, "answer %d", i)
			}
			assert.Contains(t, out.String(), ui.PromptMessage)
			assert.Equal(t, out.String(), style.Strip(out.String()))
		})
	}
}

func TestNoPrompt(t *testing.T) {
	ok, err := ui.NoPrompt{}.Next()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestShouldPrompt(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "in")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.False(t, ui.ShouldPrompt(false, "", f))
	assert.False(t, ui.ShouldPrompt(true, "out.txt", f))
	assert.False(t, ui.ShouldPrompt(true, "", f), "a regular file is not interactive")
	assert.False(t, ui.ShouldPrompt(true, "", nil))
}

func TestThemeFormatError(t *testing.T) {
	var buf bytes.Buffer
	theme := ui.NewTheme(&buf, ui.FormatText)

	err := errors.New(errors.ErrInvalidWidth, "width must be positive").
		WithDetail("width", 0).
		WithDetail("arg", "--width")
	got := theme.FormatError(err)
	assert.Equal(t, "Error [INVALID_WIDTH]: width must be positive\n  arg: --width\n  width: 0", got)

	plain := theme.FormatError(os.ErrNotExist)
	assert.Equal(t, "Error: file does not exist", plain)

	theme.RenderError(&buf, err)
	assert.True(t, strings.HasSuffix(buf.String(), "width: 0\n"))
}

func TestThemeFormatErrorWrapped(t *testing.T) {
	theme := ui.NewTheme(&bytes.Buffer{}, ui.FormatText)
	err := errors.Wrap(os.ErrPermission, errors.ErrSourceOpen, "cannot open a.geojson")
	assert.Equal(t, "Error [SOURCE_OPEN]: cannot open a.geojson: permission denied", theme.FormatError(err))
}

func TestThemeStyled(t *testing.T) {
	theme := ui.NewTheme(&bytes.Buffer{}, ui.FormatTerminal)
	got := theme.FormatError(errors.New(errors.ErrInvalidChar, "bad"))
	assert.NotEqual(t, got, style.Strip(got))
	assert.Equal(t, "Error [INVALID_CHAR]: bad", style.Strip(got))
}
