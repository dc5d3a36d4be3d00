// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

// Package supervisor runs the service under a suture v4 supervision tree.
//
// Services are grouped into layers so a restart loop in one does not take
// down the other. Supervisor events (restarts, backoff, timeouts) are
// logged through sutureslog, which writes to zerolog via the logging
// package's slog adapter.
//
//	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
//	tree.AddDataService(prefStore)
//	tree.AddAPIService(services.NewHTTPServerService(server, addr, timeout))
//	err := tree.Serve(ctx)
//
// After Serve returns, UnstoppedServiceReport names anything that ignored
// its shutdown deadline.
package supervisor
