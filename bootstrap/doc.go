// Package bootstrap provides application initialization and lifecycle management.
// It extracts the startup logic from main.go into testable, composable components.
//
// Usage:
//
//	app, err := bootstrap.NewApp(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := app.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Blocks until the shutdown coordinator has brought the process down
//	app.WaitForShutdown()
package bootstrap
