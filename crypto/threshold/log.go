package threshold

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "threshold")
