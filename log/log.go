package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/darkkaiser/youtube-feed-notifier/utils"
	log "github.com/sirupsen/logrus"
)

var (
	logDirParentPath = ""
)

const (
	logDirName       string = "logs"
	logFileExtension string = "log"

	// 호출 위치를 출력할 때 생략하는 패키지 경로
	callerShortPath = "github.com/darkkaiser/youtube-feed-notifier"
)

func init() {
	log.SetLevel(log.TraceLevel)
	log.SetReportCaller(true)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			function = fmt.Sprintf("%s(line:%d)", frame.Function, frame.Line)
			if strings.HasPrefix(function, callerShortPath) == true {
				function = "..." + function[len(callerShortPath):]
			}

			return
		},
	})
}

// Init 디버그 모드라면 표준 에러로 출력하고, 그렇지 않다면 실행할 때마다 새로운 로그 파일을 만들어 출력한다.
// 로그 파일을 만든 후에는 checkDaysAgo일이 지난 로그 파일을 모두 삭제한다.
func Init(debug bool, appName string, checkDaysAgo float64) io.Closer {
	if debug == true {
		log.SetLevel(log.TraceLevel)
		return nil
	}

	log.SetLevel(log.InfoLevel)

	logDirPath := logDir()

	// 로그 파일이 쌓이는 폴더를 생성한다.
	if _, err := os.Stat(logDirPath); os.IsNotExist(err) == true {
		utils.CheckErr(os.MkdirAll(logDirPath, 0755))
	}

	// 로그 파일을 생성한다.
	logFilePath := filepath.Join(logDirPath, fmt.Sprintf("%s-%s.%s", appName, time.Now().Format("20060102150405"), logFileExtension))
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	utils.CheckErr(err)

	log.SetOutput(logFile)

	// 일정 시간이 지난 로그 파일을 모두 삭제한다.
	cleanOutOfLogFiles(appName, checkDaysAgo)

	return logFile
}

func logDir() string {
	return fmt.Sprintf("%s%s", logDirParentPath, logDirName)
}

func cleanOutOfLogFiles(appName string, checkDaysAgo float64) {
	logDirPath := logDir()

	entries, err := os.ReadDir(logDirPath)
	if err != nil {
		return
	}

	now := time.Now()
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() == true || strings.HasPrefix(fileName, appName) == false || strings.HasSuffix(fileName, logFileExtension) == false {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			continue
		}

		daysAgo := now.Sub(fi.ModTime()).Hours() / 24
		if daysAgo < 0 {
			daysAgo = -daysAgo
		}
		if daysAgo >= checkDaysAgo {
			filePath := filepath.Join(logDirPath, fileName)

			if err = os.Remove(filePath); err == nil {
				log.Infof("오래된 로그파일 삭제 성공(%s)", filePath)
			} else {
				log.Errorf("오래된 로그파일 삭제 실패(%s), %s", filePath, err)
			}
		}
	}
}
