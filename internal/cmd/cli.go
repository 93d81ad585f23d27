// Package cmd defines the ghostkey CLI commands.
package cmd

// LogFlags configures the logger, shared by every command.
type LogFlags struct {
	Level string `help:"Log level (trace|debug|info|warn|error)" default:"info" env:"GHOSTKEY_LOG_LEVEL"`
	File  string `help:"Append logs to this file" env:"GHOSTKEY_LOG_FILE"`
}

// CLI is the root command tree parsed by kong.
type CLI struct {
	Log    LogFlags `embed:"" prefix:"log."`
	Config string   `help:"Path to a config file (json, yaml or toml)" type:"path"`

	Run        Run        `cmd:"" help:"Select the card's script and replay it as keystrokes"`
	Check      Check      `cmd:"" help:"Parse and dry-run a script without emitting input"`
	Diag       Diag       `cmd:"" help:"Run card diagnostics"`
	ConfigInit ConfigInit `cmd:"" name:"config-init" help:"Generate a configuration template"`
}
