package common

import (
	"os"
	"path/filepath"
)

func MkdirForFile(fileName string) error {
	if err := os.MkdirAll(filepath.Dir(fileName), os.ModePerm); err != nil {
		return err
	}
	return nil
}

func FileExists(fileName string) bool {
	stat, err := os.Stat(fileName)
	return err == nil && !stat.IsDir()
}
