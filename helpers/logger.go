package helpers

import (
	"fmt"
	log "github.com/sirupsen/logrus"
	tb "gopkg.in/tucnak/telebot.v2"
	"io"
	"os"
	"time"
)

type FileLogger struct {
	logger         *log.Logger
	telegramOutput bool
	telegramBot    *tb.Bot
	telegramChat   *tb.Chat
}

func NewFileLogger(output io.Writer) *FileLogger {
	plainFormatter := new(PlainFormatter)
	plainFormatter.TimestampFormat = "2006-01-02 15:04:05"
	plainFormatter.LevelDesc = []string{"PANIC", "FATAL", "ERROR", "WARN", "INFO ", "DEBUG", "TRACE"}

	logger := log.New()
	logger.SetOutput(output)
	logger.SetFormatter(plainFormatter)
	logger.SetLevel(log.InfoLevel)
	return &FileLogger{logger: logger}
}

var Logger = NewFileLogger(os.Stderr)

// ConfigureLogger points the shared logger to the configured file and level and enables
// the Telegram echo of info and warning lines when requested
func ConfigureLogger(cfg Config) error {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		Logger.logger.SetOutput(f)
	}

	if cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		Logger.logger.SetLevel(level)
	}

	if !cfg.TelegramOutput {
		return nil
	}
	if cfg.TelegramToken == "" {
		return fmt.Errorf("error: telegramOutput set to true but telegramToken parameter not found")
	}
	if cfg.TelegramChatID == "" {
		return fmt.Errorf("error: telegramOutput set to true but telegramChatId parameter not found")
	}

	b, err := tb.NewBot(tb.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tb.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return err
	}
	chat, err := b.ChatByID(cfg.TelegramChatID)
	if err != nil {
		return err
	}

	Logger.telegramBot = b
	Logger.telegramChat = chat
	Logger.telegramOutput = true
	return nil
}

func (l *FileLogger) SetOutput(output io.Writer) {
	l.logger.SetOutput(output)
}

func (l *FileLogger) Errorln(args ...interface{}) {
	l.logger.Errorln(args...)
}

func (l *FileLogger) Fatalln(args ...interface{}) {
	l.logger.Fatalln(args...)
}

func (l *FileLogger) Panicln(args ...interface{}) {
	l.logger.Panicln(args...)
}

func (l *FileLogger) Warnln(args ...interface{}) {
	l.logger.Warnln(args...)
	l.echo(args...)
}

func (l *FileLogger) Infoln(args ...interface{}) {
	l.logger.Infoln(args...)
	l.echo(args...)
}

func (l *FileLogger) Traceln(args ...interface{}) {
	l.logger.Traceln(args...)
}

func (l *FileLogger) Debugln(args ...interface{}) {
	l.logger.Debugln(args...)
}

func (l *FileLogger) echo(args ...interface{}) {
	if !l.telegramOutput || len(args) == 0 {
		return
	}
	if _, err := l.telegramBot.Send(l.telegramChat, fmt.Sprint(args...)); err != nil {
		l.logger.Errorln("telegram:", err)
	}
}

type PlainFormatter struct {
	TimestampFormat string
	LevelDesc       []string
}

func (f PlainFormatter) Format(entry *log.Entry) ([]byte, error) {
	timestamp := entry.Time.Format(f.TimestampFormat)
	return []byte(fmt.Sprintf("%s %s %s\n", f.LevelDesc[entry.Level], timestamp, entry.Message)), nil
}
