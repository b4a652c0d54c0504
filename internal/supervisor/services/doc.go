// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

/*
Package services adapts trafficwatch components to suture.Service.

HTTPServerService translates http.Server's blocking ListenAndServe into a
context-aware Serve with graceful Shutdown. DatasetMonitorService polls the
dataset reader and exports how many configured files are missing.

Both implement fmt.Stringer so supervisor events name them.
*/
package services
