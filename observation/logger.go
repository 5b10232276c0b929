package observation

import "github.com/sirupsen/logrus"

// log 观测模块的日志记录器
var log = logrus.WithField("module", "observation")
