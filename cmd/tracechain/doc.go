// Package main provides the tracechain CLI.
//
// Install:
//
//	go install github.com/tracechain/tracechain/cmd/tracechain@latest
//
// Common commands:
//
//	tracechain serve            # start the API server
//	tracechain migrate          # run migrations
//	tracechain migrate:rollback
//	tracechain migrate:status
//	tracechain seed             # seed demo accounts
//	tracechain route:list       # list API routes
//	tracechain queue:work       # run background workers
//	tracechain schedule:run     # run the task scheduler
//	tracechain fixtures:verify  # check fixture integrity
package main
