package keystore

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "keystore")
