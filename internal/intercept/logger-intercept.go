package intercept

import "cclog/internal/common"

// anywhere in the intercept code, use logIntercept.Warn() and other methods for logging;
// it stays a discard logger until MakeLoggerIntercept is called (the wrapper
// must be silent unless CC_LOGGER_DEBUG_FILE points somewhere)
var logIntercept = common.MakeDiscardLogger()

func MakeLoggerIntercept(cfg *Configuration) error {
	logger, err := common.MakeLogger(cfg.DebugFileName, 2, true)
	if err != nil {
		return err
	}
	logIntercept = logger
	return nil
}
