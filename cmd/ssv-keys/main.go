// Command ssv-keys splits a validator keystore into encrypted operator shares
// and writes the signed key shares document.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/ssvlabs/ssv-keys/io/logs"
	"github.com/ssvlabs/ssv-keys/runtime/prereqs"
	"github.com/ssvlabs/ssv-keys/runtime/version"
	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
)

var log = logrus.WithField("prefix", "main")

func newApp() *cli.App {
	logFormat, logFileFormat, padding = "text", "text", "pkcs1v15"
	return &cli.App{
		Name:    "ssv-keys",
		Usage:   "split a validator key into encrypted operator shares for SSV registration",
		Version: version.Version(),
		Flags:   appFlags,
		Before: func(cliCtx *cli.Context) error {
			if err := logs.ConfigureLogging(cliCtx.String(LogLevelFlag.Name), logFormat); err != nil {
				return err
			}
			prereqs.WarnIfPlatformNotSupported(cliCtx.Context)
			if logFileName := cliCtx.String(LogFileNameFlag.Name); logFileName != "" {
				if err := logs.ConfigurePersistentLogging(logFileName, logFileFormat); err != nil {
					log.WithError(err).Error("Failed to configuring logging to disk.")
				}
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:    "shares",
				Aliases: []string{"ksh"},
				Usage:   "build key shares from a keystore file or folder",
				Flags:   sharesFlags,
				Action: func(cliCtx *cli.Context) error {
					written, err := sharesAction(cliCtx)
					if err != nil {
						return err
					}
					for _, path := range written {
						fmt.Printf("%s %s\n", au.BrightGreen("Key shares file written:"), au.Bold(path))
					}
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
