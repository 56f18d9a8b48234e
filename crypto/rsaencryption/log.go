package rsaencryption

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "rsaencryption")
