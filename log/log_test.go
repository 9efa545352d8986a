package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	// 로그가 생성되는 폴더를 임시폴더로 설정한다.
	logDirParentPath = fmt.Sprintf("%s%s", t.TempDir(), string(os.PathSeparator))
	defer func() { logDirParentPath = "" }()

	var checkDaysAgo = 10.
	var logDirPath = logDir()
	var appName = "log-package-testing"

	assert := assert.New(t)

	//
	// 디버그 모드로 초기화하면, 로그폴더 및 파일은 생성되지 않아야 한다.
	//
	assert.Nil(Init(true, appName, checkDaysAgo))
	assert.Equal(log.TraceLevel, log.GetLevel())

	_, err := os.Stat(logDirPath)
	assert.True(os.IsNotExist(err))

	//
	// 운영 모드로 초기화하면, 로그폴더 및 1개의 파일이 생성되어져야 한다.
	//
	lf := Init(false, appName, checkDaysAgo)
	assert.NotNil(lf)
	assert.Equal(log.InfoLevel, log.GetLevel())

	_, err = os.Stat(logDirPath)
	assert.False(os.IsNotExist(err))

	entries, _ := os.ReadDir(logDirPath)
	assert.Equal(1, len(entries))

	lfName := entries[0].Name()
	assert.True(strings.HasPrefix(lfName, appName))
	assert.True(strings.HasSuffix(lfName, logFileExtension))

	// 로그파일이 열려있으면 임시폴더가 삭제되지 않는 문제가 발생하기도 하므로 강제로 닫아준다.
	_ = lf.Close()

	// 로그파일을 강제로 닫아주었으므로 로거의 출력 및 레벨을 기본값으로 재설정한다.
	log.SetOutput(os.Stderr)
	log.SetLevel(log.TraceLevel)

	//
	// 로그파일의 수정일자를 현재-(삭제기한+1)로 변경하여, 기한이 지난 로그파일이 삭제되는지 테스트한다.
	//
	mtime := time.Now().Add(time.Hour * 24 * (-1 * (time.Duration(checkDaysAgo) + 1))).Local()
	assert.NoError(os.Chtimes(filepath.Join(logDirPath, lfName), mtime, mtime))

	// 다른 애플리케이션의 로그파일은 삭제하지 않는다.
	otherFilePath := filepath.Join(logDirPath, "other-app."+logFileExtension)
	assert.NoError(os.WriteFile(otherFilePath, []byte("log"), 0644))
	assert.NoError(os.Chtimes(otherFilePath, mtime, mtime))

	// 삭제기한을 임의로 +2해서 로그파일이 삭제되지 않는지 확인한다.
	cleanOutOfLogFiles(appName, checkDaysAgo+2)

	entries, _ = os.ReadDir(logDirPath)
	assert.Equal(2, len(entries))

	// 원래의 삭제기한으로 했을때 로그파일이 삭제되는지 확인한다.
	cleanOutOfLogFiles(appName, checkDaysAgo)

	entries, _ = os.ReadDir(logDirPath)
	assert.Equal(1, len(entries))
	assert.Equal("other-app."+logFileExtension, entries[0].Name())
}
