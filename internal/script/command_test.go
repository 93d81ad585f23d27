package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ghostkey/ghostkey/internal/script"
)

func TestParseDucky(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantOK     bool
		wantName   string
		wantParams string
	}{
		{name: "blank", line: "", wantOK: false},
		{name: "comment", line: "REM set up the payload", wantOK: false},
		{name: "comment lowercase", line: "rem whatever", wantOK: false},
		{name: "bare command", line: "ENTER", wantOK: true, wantName: "ENTER"},
		{name: "command lowercased", line: "string Hello", wantOK: true, wantName: "STRING", wantParams: "Hello"},
		{name: "params keep case", line: "STRING Hello World!", wantOK: true, wantName: "STRING", wantParams: "Hello World!"},
		{name: "delay", line: "DELAY 500", wantOK: true, wantName: "DELAY", wantParams: "500"},
		{name: "chord keeps whole token", line: "CTRL+ALT+DELETE", wantOK: true, wantName: "CTRL+ALT+DELETE"},
		{name: "chord lowercase", line: "ctrl+shift+esc", wantOK: true, wantName: "CTRL+SHIFT+ESC"},
		{name: "modifier with param", line: "GUI r", wantOK: true, wantName: "GUI", wantParams: "r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := script.Parse(tt.line, script.DialectDucky)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantName, cmd.Name)
			assert.Equal(t, tt.wantParams, cmd.Params)
			assert.Equal(t, script.DialectDucky, cmd.Dialect)
		})
	}
}

func TestParseCustom(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantOK     bool
		wantName   string
		wantParams string
	}{
		{name: "blank", line: "", wantOK: false},
		{name: "comment", line: "# notes", wantOK: false},
		{name: "bare command", line: "RUN", wantOK: true, wantName: "RUN"},
		{name: "bare lowercased", line: "minimize", wantOK: true, wantName: "MINIMIZE"},
		{name: "with params", line: "TYPE:hello world", wantOK: true, wantName: "TYPE", wantParams: "hello world"},
		{name: "params keep case", line: "type:Hello World", wantOK: true, wantName: "TYPE", wantParams: "Hello World"},
		{name: "empty params", line: "TYPE:", wantOK: true, wantName: "TYPE", wantParams: ""},
		{name: "params trimmed", line: "TYPELINE:  spaced  ", wantOK: true, wantName: "TYPELINE", wantParams: "spaced"},
		{name: "only first colon splits", line: "TYPE:a:b:c", wantOK: true, wantName: "TYPE", wantParams: "a:b:c"},
		{name: "lone colon", line: ":", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := script.Parse(tt.line, script.DialectCustom)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantName, cmd.Name)
			assert.Equal(t, tt.wantParams, cmd.Params)
			assert.Equal(t, script.DialectCustom, cmd.Dialect)
		})
	}
}

func TestIsComment(t *testing.T) {
	assert.True(t, script.IsComment("REM hello", script.DialectDucky))
	assert.True(t, script.IsComment("rem hello", script.DialectDucky))
	assert.False(t, script.IsComment("REMINDER", script.DialectDucky))
	assert.False(t, script.IsComment("# hello", script.DialectDucky))

	assert.True(t, script.IsComment("# hello", script.DialectCustom))
	assert.False(t, script.IsComment("REM hello", script.DialectCustom))
}
