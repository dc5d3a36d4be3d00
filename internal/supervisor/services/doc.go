// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

// Package services adapts long-running components to suture.Service.
//
// HTTPServerService translates the blocking ListenAndServe/Shutdown pair
// of *http.Server into suture's context-aware Serve:
//
//	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router}
//	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, 10*time.Second))
//
// Components that already expose Serve(ctx) error, such as the preference
// store's GC loop, are added to the tree directly.
package services
