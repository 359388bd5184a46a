package app

// Command selects the application startup mode.
type Command string

const (
	// CommandServe starts the API server.
	CommandServe Command = "serve"
	// CommandMigrate applies pending database migrations.
	CommandMigrate Command = "migrate"
	// CommandSeed loads the demo users and feedback.
	CommandSeed Command = "seed"
	// CommandHealthcheck probes the local server.
	// For Docker healthchecks in distroless images.
	CommandHealthcheck Command = "healthcheck"
	// CommandDashboard runs the terminal dashboard client.
	CommandDashboard Command = "dashboard"
)

// ParseCommand resolves the subcommand from the command-line arguments.
// No arguments or an unknown command means serve.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "serve":
		return CommandServe
	case "migrate":
		return CommandMigrate
	case "seed":
		return CommandSeed
	case "healthcheck":
		return CommandHealthcheck
	case "dashboard":
		return CommandDashboard
	default:
		return CommandServe
	}
}
