package main

import (
	"context"

	"causelist-backend/cmd/causelist-cli/commands"
	"causelist-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "causelist-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
