package main

import (
	"github.com/ssvlabs/ssv-keys/cmd/flags"
	"github.com/urfave/cli/v2"
)

var (
	logFormat     string
	logFileFormat string
	padding       string
)

var (
	// KeystoreFlag points at a keystore file or a folder of keystore files.
	KeystoreFlag = &cli.StringFlag{
		Name:    "keystore",
		Aliases: []string{"ks"},
		Usage:   "Path to a keystore file or a folder of keystore files",
	}
	// PasswordFlag is the keystore password.
	PasswordFlag = &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"ps"},
		Usage:   "Password of the keystore(s)",
		EnvVars: []string{"SSV_KEYS_PASSWORD"},
	}
	// PasswordFileFlag reads the keystore password from a file.
	PasswordFileFlag = &cli.StringFlag{
		Name:  "password-file",
		Usage: "Path to a file holding the keystore password",
	}
	// OperatorIDsFlag lists the operator ids, comma separated.
	OperatorIDsFlag = &cli.StringFlag{
		Name:    "operator-ids",
		Aliases: []string{"oids"},
		Usage:   "Comma separated operator ids",
	}
	// OperatorKeysFlag lists the operator public keys, comma separated, in the order of --operator-ids.
	OperatorKeysFlag = &cli.StringFlag{
		Name:    "operator-keys",
		Aliases: []string{"oks"},
		Usage:   "Comma separated operator public keys (base64)",
	}
	// OperatorsFileFlag points at a JSON or YAML list of operators.
	OperatorsFileFlag = &cli.StringFlag{
		Name:  "operators-file",
		Usage: "Path to a JSON or YAML file listing operators as {id, publicKey}",
	}
	// OwnerAddressFlag is the account registering the validator.
	OwnerAddressFlag = &cli.StringFlag{
		Name:    "owner-address",
		Aliases: []string{"oa"},
		Usage:   "Address of the validator owner",
		EnvVars: []string{"SSV_KEYS_OWNER_ADDRESS"},
	}
	// OwnerNonceFlag is the owner's register nonce. Folders use nonce, nonce+1, ...
	OwnerNonceFlag = &cli.Int64Flag{
		Name:    "owner-nonce",
		Aliases: []string{"on"},
		Usage:   "Register nonce of the validator owner",
	}
	// OutputFolderFlag is where key shares files are written.
	OutputFolderFlag = &cli.StringFlag{
		Name:    "output-folder",
		Aliases: []string{"of"},
		Usage:   "Folder to write key shares files to",
		Value:   ".",
	}
	// NoTimestampFlag drops the unix time from output file names.
	NoTimestampFlag = &cli.BoolFlag{
		Name:  "no-timestamp",
		Usage: "Name the output keyshares.json instead of keyshares-<unix time>.json",
	}
	// PaddingFlag selects the RSA padding used to encrypt shares.
	PaddingFlag = flags.EnumValue{
		Name:        "padding",
		Usage:       "RSA padding used to encrypt shares",
		Destination: &padding,
		Enum:        []string{"pkcs1v15", "oaep"},
		Value:       "pkcs1v15",
	}.GenericFlag()

	// LogLevelFlag sets the logging verbosity.
	LogLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Logging verbosity (trace, debug, info, warn, error, fatal, panic)",
		Value: "info",
	}
	// LogFormatFlag sets the console log format.
	LogFormatFlag = flags.EnumValue{
		Name:        "log-format",
		Usage:       "Console log format",
		Destination: &logFormat,
		Enum:        []string{"text", "fluentd", "json"},
		Value:       "text",
	}.GenericFlag()
	// LogFileNameFlag mirrors logs to a file.
	LogFileNameFlag = &cli.StringFlag{
		Name:  "log-file",
		Usage: "Specify log file name, relative or absolute",
	}
	// LogFileFormatFlag sets the log file format.
	LogFileFormatFlag = flags.EnumValue{
		Name:        "log-file-format",
		Usage:       "Log file format",
		Destination: &logFileFormat,
		Enum:        []string{"text", "fluentd", "json"},
		Value:       "text",
	}.GenericFlag()
)

var appFlags = []cli.Flag{
	LogLevelFlag,
	LogFormatFlag,
	LogFileNameFlag,
	LogFileFormatFlag,
}

var sharesFlags = []cli.Flag{
	KeystoreFlag,
	PasswordFlag,
	PasswordFileFlag,
	OperatorIDsFlag,
	OperatorKeysFlag,
	OperatorsFileFlag,
	OwnerAddressFlag,
	OwnerNonceFlag,
	OutputFolderFlag,
	NoTimestampFlag,
	PaddingFlag,
}
