package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// IsDir Path is directory
func IsDir(fileAddr string) bool {
	s, err := os.Stat(fileAddr)
	if err != nil {
		log.Debugf("stat %s: %v", fileAddr, err)
		return false
	}
	return s.IsDir()
}

// CreateDir creates a directory
func CreateDir(dir string) bool {
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		log.Errorf("create dir %s: %v", dir, err)
		return false
	}
	return true
}

// IsExists Path is exists
func IsExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

const DefaultTimeLayout = "20060102150405"

// GetFilePathByFilename 根据filename获取文件路径
// 如：filename为REPORT_3f2a_20220909153131.xlsx,
// 返回：{rootDir}/2022/9/REPORT_3f2a_20220909153131.xlsx
func GetFilePathByFilename(rootDir, filename, timeLayout string) (string, error) {
	if timeLayout == "" {
		timeLayout = DefaultTimeLayout
	}
	if filename != filepath.Base(filename) {
		return "", fmt.Errorf("the filename: %s must not contain a path", filename)
	}

	fn := strings.Split(filename, ".")[0]
	paths := strings.Split(fn, "_")
	timestamp := paths[len(paths)-1]
	if timestamp == "" {
		return "", fmt.Errorf("the filename: %s cannot get timestamp", filename)
	}
	ftime, err := time.Parse(timeLayout, timestamp)
	if err != nil {
		return "", fmt.Errorf("the timestamp: %s is not valid(timeLayout: %s)", timestamp, timeLayout)
	}
	return filepath.Join(rootDir, fmt.Sprintf("%d", ftime.Year()), fmt.Sprintf("%d", int(ftime.Month())), filename), nil
}

// FileExt lower-cased extension of the file name, including the dot
func FileExt(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
