package doctor

import (
	"context"

	"github.com/spacialist/plugin-doctor/internal/log"
)

// Dispatch parses args and runs the single selected command. A rejected
// command line is reported and returned; no command runs.
func Dispatch(ctx context.Context, run *Run, args []string) error {
	res := Parse(args)
	if err := res.Err(); err != nil {
		log.FromContext(ctx).Errorf("%s", err.Error())
		return err
	}

	cmd := res.Selected[0]
	log.FromContext(ctx).Debug("dispatching", "command", cmd, "plugin", run.Paths().PluginDir)
	return run.Execute(ctx, cmd)
}
