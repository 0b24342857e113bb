package config

import (
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
)

// InitLog Initialize logging settings. An empty logDir keeps logging on stderr.
func InitLog(logDir string, logFilename string, lev string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, err := log.ParseLevel(lev)
	if err == nil {
		log.SetLevel(level)
	} else {
		log.Errorf("Invalid log level '%s', using default", lev)
	}

	if logDir == "" {
		return
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Errorf("Failed to create log directory: %v", err)
		return
	}

	if logFilename == "" {
		path, _ := os.Executable()
		_, exec := filepath.Split(path)
		logFilename = exec + ".log"
	}
	fullLogPath := filepath.Join(logDir, logFilename)

	// 每天生成一个日志文件，保留15天
	writer, err := rotatelogs.New(fullLogPath+".%Y%m%d",
		rotatelogs.WithLinkName(fullLogPath),
		rotatelogs.WithRotationCount(15),
		rotatelogs.WithRotationTime(24*time.Hour))
	if err != nil {
		log.Errorf("Failed to initialize log rotation: %v", err)
		return
	}

	log.SetOutput(writer)
	log.Debugf("LOG dir: %s, filename: %s, level: %s", logDir, logFilename, lev)
}
