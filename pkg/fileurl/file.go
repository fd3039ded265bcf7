package fileurl

import (
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// CreatePath creates a directory tree when missing
// CreatePath 目录不存在时创建
func CreatePath(path string, perm os.FileMode) error {
	if IsExist(path) {
		return nil
	}
	return os.MkdirAll(path, perm)
}

// SafeFileName NFC-normalizes a name and replaces characters no filesystem accepts
// SafeFileName 对文件名做 NFC 规范化并替换文件系统不允许的字符
func SafeFileName(name string) string {
	name = norm.NFC.String(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, name)
}
