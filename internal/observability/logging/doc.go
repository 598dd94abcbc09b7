// Package logging sets up the portal's slog logger and the request-scoped
// helpers handlers use to tag their entries.
//
//	logger := logging.Setup()
//	reqLogger := logging.WithRequestID(r.Context(), logger)
//	reqLogger.Info("rendering page", slog.String("page", "home"))
package logging
