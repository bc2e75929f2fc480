package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajkula/livetext/adapter/outbound/filesource"
	"github.com/ajkula/livetext/adapter/outbound/logging"
	"github.com/ajkula/livetext/domain/model"
	"github.com/ajkula/livetext/domain/service"
)

var (
	catFollow   bool
	catInterval time.Duration
)

var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Print a file, and with --follow print it again on every change",
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

func init() {
	catCmd.Flags().BoolVarP(&catFollow, "follow", "f", false, "Keep printing new versions of the file")
	catCmd.Flags().DurationVar(&catInterval, "interval", 0, "Poll interval (defaults to watch.interval from the config)")
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if catInterval > 0 {
		cfg.Watch.Interval = catInterval
	}
	cfg.Logging.Output = "stderr"

	logger := logging.NewSlogAdapter(cfg)
	defer logger.Shutdown()

	manager := service.NewResourceManagerService(
		filesource.NewOSSource(),
		logger,
		service.WatchOptions{Interval: cfg.Watch.Interval},
	)
	defer manager.Shutdown()

	res, err := manager.Open(args[0])
	if err != nil {
		return err
	}

	text := res.Get()
	fmt.Fprint(cmd.OutOrStdout(), text)
	if !catFollow {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return followResource(ctx, res, text, cfg.Watch.Interval, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// followResource prints res whenever its text differs from last, until ctx
// is done. Refresh failures go to errOut and following continues.
func followResource(
	ctx context.Context,
	res *model.TextResource,
	last string,
	interval time.Duration,
	out, errOut io.Writer,
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			text, err := res.StrictGet()
			if err != nil {
				fmt.Fprintf(errOut, "livetext: %v\n", err)
				continue
			}
			if text != last {
				fmt.Fprint(out, text)
				last = text
			}
		}
	}
}
