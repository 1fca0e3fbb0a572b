package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogBookingCommitted logs a successful booking commit
func (l *Logger) LogBookingCommitted(ctx context.Context, bookingID, email string, seats int, total float64) {
	l.Logger.InfoContext(ctx,
		"Booking Committed",
		slog.String("booking_id", bookingID),
		slog.String("email", email),
		slog.Int("seats", seats),
		slog.Float64("total_price", total),
	)
}

// LogAvailabilityConflict logs a checkout rejected by the ledger re-check
func (l *Logger) LogAvailabilityConflict(ctx context.Context, email string, detail string) {
	l.Logger.WarnContext(ctx,
		"Availability Conflict",
		slog.String("email", email),
		slog.String("detail", detail),
	)
}

// LogReconciliationNeeded logs a booking left in a partial state. These
// records require manual operator attention, hence Error level.
func (l *Logger) LogReconciliationNeeded(ctx context.Context, bookingID, stage string, err error) {
	l.Logger.ErrorContext(ctx,
		"Booking Needs Reconciliation",
		slog.String("booking_id", bookingID),
		slog.String("failed_stage", stage),
		slog.String("error", err.Error()),
	)
}

// LogNotificationFailure logs a failed confirmation send; always non-fatal
func (l *Logger) LogNotificationFailure(ctx context.Context, bookingID string, err error) {
	l.Logger.WarnContext(ctx,
		"Notification Failure",
		slog.String("booking_id", bookingID),
		slog.String("error", err.Error()),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
