package middleware

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger is the process-wide structured logger. Everything that logs —
// request middleware, database bridge, cache — goes through it so the
// output stays one JSON stream.
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// StructuredLogger emits one log line per request after the handler chain
// has run: status, latency, caller identity when known.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get("User-Agent")),
		}
		if uid := c.Locals("userID"); uid != nil {
			attrs = append(attrs, slog.Any("user_id", uid))
		}
		if rid := c.Locals("requestid"); rid != nil {
			attrs = append(attrs, slog.Any("request_id", rid))
		}

		if err != nil {
			Logger.Error("request failed", append(attrs, slog.String("error", err.Error()))...)
		} else {
			Logger.Info("request processed", attrs...)
		}
		return err
	}
}
