package inject

import "log/slog"

// LogKeyboard reports events to a logger instead of a device.
type LogKeyboard struct {
	logger *slog.Logger
}

// NewLogKeyboard creates a LogKeyboard. A nil logger means slog.Default().
func NewLogKeyboard(logger *slog.Logger) *LogKeyboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogKeyboard{logger: logger}
}

func (k *LogKeyboard) KeyDown(key string) error {
	k.logger.Info("key down", "key", key)
	return nil
}

func (k *LogKeyboard) KeyUp(key string) error {
	k.logger.Info("key up", "key", key)
	return nil
}

func (k *LogKeyboard) Type(text string) error {
	k.logger.Info("type", "text", text)
	return nil
}
