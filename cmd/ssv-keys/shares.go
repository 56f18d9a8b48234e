package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/ssvlabs/ssv-keys/crypto/rsaencryption"
	"github.com/ssvlabs/ssv-keys/io/file"
	"github.com/ssvlabs/ssv-keys/io/prompt"
	"github.com/ssvlabs/ssv-keys/ssvkeys"
	"github.com/urfave/cli/v2"
)

const (
	keystorePromptText = "Enter the path to your keystore file or folder"
	passwordPromptText = "Enter the keystore password"
	ownerPromptText    = "Enter the owner address"
	noncePromptText    = "Enter the owner register nonce"
)

var au = aurora.NewAurora(true)

// sharesAction builds one key shares file per keystore and returns the written paths.
func sharesAction(cliCtx *cli.Context) ([]string, error) {
	keystorePath, err := inputValue(cliCtx, KeystoreFlag.Name, keystorePromptText, "", prompt.NotEmpty)
	if err != nil {
		return nil, err
	}
	keystores, err := file.KeystoreFiles(keystorePath)
	if err != nil {
		return nil, err
	}
	operators, err := operatorsFromContext(cliCtx)
	if err != nil {
		return nil, err
	}
	ownerAddress, err := inputValue(cliCtx, OwnerAddressFlag.Name, ownerPromptText, "", prompt.NotEmpty)
	if err != nil {
		return nil, err
	}
	nonce, err := inputNonce(cliCtx)
	if err != nil {
		return nil, err
	}
	password, err := inputPassword(cliCtx)
	if err != nil {
		return nil, err
	}
	pad, err := rsaencryption.PaddingFromString(padding)
	if err != nil {
		return nil, err
	}

	outputDir, err := file.ExpandPath(cliCtx.String(OutputFolderFlag.Name))
	if err != nil {
		return nil, err
	}
	if err := file.MkdirAll(outputDir); err != nil {
		return nil, errors.Wrapf(err, "could not create output folder %s", outputDir)
	}
	var timestamp time.Time
	if !cliCtx.Bool(NoTimestampFlag.Name) {
		timestamp = time.Now()
	}

	svc := ssvkeys.New(ssvkeys.WithEncryptor(rsaencryption.New(rsaencryption.WithPadding(pad))))
	written := make([]string, 0, len(keystores))
	var bar *progressbar.ProgressBar
	if len(keystores) > 1 {
		bar = initializeProgressBar(len(keystores), "Building key shares")
	}
	for i, path := range keystores {
		keystoreJSON, err := file.ReadFileAsBytes(path)
		if err != nil {
			return written, errors.Wrapf(err, "could not read keystore %s", path)
		}
		doc, err := svc.BuildKeyShares(ssvkeys.Request{
			KeystoreJSON:  keystoreJSON,
			Password:      password,
			Operators:     operators,
			OwnerAddress:  ownerAddress,
			RegisterNonce: nonce + int64(i),
		})
		if err != nil {
			return written, errors.Wrapf(err, "could not build key shares for %s", path)
		}
		enc, err := doc.ToJSON()
		if err != nil {
			return written, err
		}
		suffix := ""
		if len(keystores) > 1 {
			suffix = strconv.Itoa(i + 1)
		}
		outPath := file.OutputFilePath(outputDir, timestamp, suffix)
		if err := file.WriteFile(outPath, enc); err != nil {
			return written, errors.Wrapf(err, "could not write %s", outPath)
		}
		log.WithFields(logrus.Fields{
			"keystore": path,
			"nonce":    nonce + int64(i),
			"output":   outPath,
		}).Info("Wrote key shares")
		written = append(written, outPath)
		if bar != nil {
			if err := bar.Add(1); err != nil {
				log.WithError(err).Debug("Could not update progress bar")
			}
		}
	}
	return written, nil
}

func inputValue(cliCtx *cli.Context, flagName, promptText, defaultValue string, validate func(string) error) (string, error) {
	if cliCtx.IsSet(flagName) {
		value := cliCtx.String(flagName)
		if err := validate(value); err != nil {
			return "", errors.Wrapf(err, "invalid --%s", flagName)
		}
		return value, nil
	}
	return prompt.DefaultAndValidatePrompt(promptText, defaultValue, validate)
}

func inputNonce(cliCtx *cli.Context) (int64, error) {
	if cliCtx.IsSet(OwnerNonceFlag.Name) {
		return cliCtx.Int64(OwnerNonceFlag.Name), nil
	}
	value, err := prompt.DefaultAndValidatePrompt(noncePromptText, "0", prompt.ValidateNumber)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

func inputPassword(cliCtx *cli.Context) (string, error) {
	if cliCtx.IsSet(PasswordFlag.Name) {
		return cliCtx.String(PasswordFlag.Name), nil
	}
	if passwordFile := cliCtx.String(PasswordFileFlag.Name); passwordFile != "" {
		data, err := file.ReadFileAsBytes(passwordFile)
		if err != nil {
			return "", errors.Wrap(err, "could not read password file")
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return prompt.PasswordPrompt(passwordPromptText, prompt.NotEmpty)
}
