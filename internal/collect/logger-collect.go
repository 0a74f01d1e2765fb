package collect

import "cclog/internal/common"

// anywhere in the collect code, use logCollect.Info() and other methods for logging
var logCollect = common.MakeDiscardLogger()

func MakeLoggerCollect(logFileName string, verbosity int) error {
	logger, err := common.MakeLogger(logFileName, verbosity, true)
	if err != nil {
		return err
	}
	logCollect = logger
	return nil
}
