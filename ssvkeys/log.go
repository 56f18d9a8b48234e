package ssvkeys

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "ssvkeys")
