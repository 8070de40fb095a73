// 指示: miu200521358
// Package logging はツール共通のロガーを提供する。実体は zerolog を包む薄いラッパ。
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Level はログレベルを表す。
type Level int

const (
	// LOG_LEVEL_DEBUG はデバッグレベルを表す。
	LOG_LEVEL_DEBUG Level = iota
	// LOG_LEVEL_INFO は情報レベルを表す。
	LOG_LEVEL_INFO
	// LOG_LEVEL_WARN は警告レベルを表す。
	LOG_LEVEL_WARN
	// LOG_LEVEL_ERROR はエラーレベルを表す。
	LOG_LEVEL_ERROR
)

// Logger はレベル制御付きロガーを表す。
type Logger struct {
	logger zerolog.Logger
}

// NewLogger は出力先指定でロガーを生成する。nil の場合は標準エラーへ出力する。
func NewLogger(w io.Writer) *Logger {
	if w == nil {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return &Logger{
		logger: zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel),
	}
}

// SetLevel は出力レベルを設定する。
func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.logger = l.logger.Level(toZerologLevel(level))
}

// Debug はデバッグログを出力する。
func (l *Logger) Debug(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Debug().Msgf(format, args...)
}

// Info は情報ログを出力する。
func (l *Logger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Info().Msgf(format, args...)
}

// Warn は警告ログを出力する。
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Warn().Msgf(format, args...)
}

// Error はエラーログを出力する。
func (l *Logger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Error().Msgf(format, args...)
}

// toZerologLevel はレベル値を zerolog のレベルへ変換する。
func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case LOG_LEVEL_DEBUG:
		return zerolog.DebugLevel
	case LOG_LEVEL_WARN:
		return zerolog.WarnLevel
	case LOG_LEVEL_ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// defaultLogger は既定ロガーを保持する。
var defaultLogger = NewLogger(nil)

// DefaultLogger は既定ロガーを返す。
func DefaultLogger() *Logger {
	return defaultLogger
}

// SetDefaultLogger は既定ロガーを差し替え、差し替え前のロガーを返す。
func SetDefaultLogger(logger *Logger) *Logger {
	previous := defaultLogger
	if logger != nil {
		defaultLogger = logger
	}
	return previous
}
