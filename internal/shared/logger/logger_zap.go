// Package logger содержит общий логгер сервера.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack) и удобный метод для логирования HTTP-запросов.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// HTTPLogger представляет обёртку над zap.Logger для логирования HTTP-событий.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type HTTPLogger struct {
	*zap.Logger
}

// Options — параметры логгера. Заполняются из секции log конфига.
type Options struct {
	// Dir — каталог для файла http.log. Пустая строка — runtime/logs.
	Dir string
	// Level — debug|info|warn|error. Неизвестный уровень трактуется как info.
	Level string
	// Console — дублировать ли логи в stderr (удобно в dev).
	Console bool
}

// New создаёт файловый zap-логгер для HTTP-логов.
//
// Логи записываются в файл <Dir>/http.log.
// Для файлов включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func New(opts Options) *HTTPLogger {
	logDir := opts.Dir
	if logDir == "" {
		logDir = filepath.Join("runtime", "logs")
	}
	_ = os.MkdirAll(logDir, 0755)

	// lumberjack отвечает за ротацию файлов
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "http.log"),
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // дней
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	level := ParseLevel(opts.Level)
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	core := zapcore.NewCore(encoder, writer, level)
	if opts.Console {
		core = zapcore.NewTee(core, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level))
	}

	return &HTTPLogger{Logger: zap.New(core, zap.AddCaller())}
}

// NewNop возвращает логгер, который ничего не пишет. Нужен в тестах.
func NewNop() *HTTPLogger {
	return &HTTPLogger{Logger: zap.NewNop()}
}

// ParseLevel переводит строку уровня из конфига в zapcore.Level.
func ParseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// duration — длительность обработки запроса в миллисекундах.
func (logger *HTTPLogger) LogRequest(requestID, method, uri string, status, responseSize int, duration float64) {
	logger.Info("HTTP request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	)
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
