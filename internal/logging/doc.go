// Package logging provides structured logging for ctxgen.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Context-aware methods that inject the run ID
//   - Console or JSON encoding, always on stderr
//
// stdout belongs to the command's own output, so logs never go there.
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	cfg.Level = "debug"
//	logger, err := logging.NewLogger(cfg)
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithRunID(ctx)
//	logger.Info(ctx, "generated context document", zap.Int("files", n))
//
// # Testing
//
// Use TestLogger for test assertions:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "test message", zap.String("key", "value"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "test message")
//	tl.AssertField(t, "test message", "key", "value")
package logging
