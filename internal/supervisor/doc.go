// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

/*
Package supervisor runs the long-lived trafficwatch services under suture v4.

The tree has two layers so that a failure in one does not restart the other:

	RootSupervisor ("trafficwatch")
	├── DataSupervisor ("data-layer")
	│   └── DatasetMonitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (service start, failure, backoff, restart) are logged
through sutureslog using the zerolog-backed slog adapter from
internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewDatasetMonitorService(reader, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	unstopped, err := tree.Run(ctx)
	if err != nil {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}

Cancelling the context stops every service. Run returns once the root
supervisor has exited, together with the services still running after
ShutdownTimeout.
*/
package supervisor
