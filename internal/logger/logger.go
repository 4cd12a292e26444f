package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Setup настраивает логгер под окружение: debug и текст в development,
// info и JSON в остальных окружениях.
func Setup(env string) *logrus.Logger {
	if env == "development" {
		Init("debug")
		SetTextFormatter()
	} else {
		Init("info")
	}
	return Log
}

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// SetOutput перенаправляет вывод логгера (в тестах и CLI).
func SetOutput(w io.Writer) {
	L().SetOutput(w)
}

// L возвращает логгер приложения; до Init отдаёт стандартный логгер logrus.
func L() *logrus.Logger {
	if Log != nil {
		return Log
	}
	return logrus.StandardLogger()
}

// ForCategory возвращает запись лога с полем категории галереи.
func ForCategory(slug string) *logrus.Entry {
	return L().WithField("category", slug)
}
