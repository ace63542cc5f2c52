// Package shutdown coordinates process termination.
//
// A Handler waits for SIGINT/SIGTERM (or an explicit Trigger), then runs
// the registered hooks in reverse order under a shared timeout.
//
//	h := shutdown.NewHandler(10*time.Second, log)
//	h.OnShutdown("redis", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
