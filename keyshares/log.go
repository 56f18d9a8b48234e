package keyshares

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "keyshares")
