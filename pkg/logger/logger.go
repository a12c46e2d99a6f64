package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level задает минимальный уровень, начиная с которого записи попадают в вывод
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// Logger пишет строки вида "[время] [уровень] сообщение | k=v k=v" в один поток.
// Потокобезопасен: конкурентные записи сериализуются мьютексом.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// New создает Logger с уровнем из строки ("debug", "info", "warn", "error").
// Неизвестный уровень трактуется как info.
func New(level string) *Logger {
	return &Logger{
		out:   os.Stdout,
		level: parseLevel(level),
	}
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.write(DEBUG, msg, args)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.write(INFO, msg, args)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.write(WARN, msg, args)
}

// Error добавляет err в пары ключ-значение под ключом "error", если err не nil
func (l *Logger) Error(msg string, err error, args ...interface{}) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.write(ERROR, msg, args)
}

func (l *Logger) write(lv Level, msg string, args []interface{}) {
	if lv < l.level {
		return
	}

	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("] [")
	b.WriteString(levelNames[lv])
	b.WriteString("] ")
	b.WriteString(msg)

	if len(args) > 0 {
		b.WriteString(" |")
		for i := 0; i+1 < len(args); i += 2 {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		}
	}
	b.WriteByte('\n')

	l.mu.Lock()
	l.out.Write([]byte(b.String()))
	l.mu.Unlock()
}
