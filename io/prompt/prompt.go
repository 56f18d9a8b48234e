// Package prompt reads interactive input for the command line tool.
package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/logrusorgru/aurora"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
)

var au = aurora.NewAurora(true)

// PasswordPrompt prompts the user for a password, masking the input.
func PasswordPrompt(promptText string, validateFunc func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    promptText,
		Validate: validateFunc,
		Mask:     '*',
	}
	res, err := p.Run()
	if err != nil {
		return "", FormatPromptError(err)
	}
	return res, nil
}

// DefaultPrompt prompts the user for any text and performs no validation. If nothing is entered it returns the default.
func DefaultPrompt(promptText, defaultValue string) (string, error) {
	return DefaultAndValidatePrompt(promptText, defaultValue, func(string) error { return nil })
}

// DefaultAndValidatePrompt prompts the user for any text and expects it to fulfill a validation function.
// If nothing is entered the default value is returned.
func DefaultAndValidatePrompt(promptText, defaultValue string, validateFunc func(string) error) (string, error) {
	var responseValid bool
	var response string
	for !responseValid {
		fmt.Printf("%s %s:\n", au.Bold(promptText), fmt.Sprintf("(%s: %s)", "default", defaultValue))
		scanner := bufio.NewScanner(os.Stdin)
		if ok := scanner.Scan(); !ok {
			return "", errors.New("could not scan input")
		}
		item := scanner.Text()
		response = strings.TrimRight(item, "\r\n")
		if response == "" {
			return defaultValue, nil
		}
		if err := validateFunc(response); err != nil {
			fmt.Printf("Entry not valid: %s\n", au.BrightRed(err))
			return "", err
		}
		responseValid = true
	}
	return response, nil
}

// NotEmpty is a validation function to make sure the input given isn't empty and is valid unicode.
func NotEmpty(input string) error {
	if input == "" {
		return errors.New("input cannot be empty")
	}
	if !IsValidUnicode(input) {
		return errors.New("not valid unicode")
	}
	return nil
}

// ValidateNumber makes sure the entered text is a non-negative integer.
func ValidateNumber(input string) error {
	if _, err := strconv.ParseUint(input, 10, 64); err != nil {
		return errors.Errorf("%s is not a non-negative integer", input)
	}
	return nil
}

// IsValidUnicode checks if an input string is a valid unicode string comprised of only
// letters, numbers, punctuation, or symbols.
func IsValidUnicode(input string) bool {
	for _, char := range input {
		if !(unicode.IsLetter(char) ||
			unicode.IsNumber(char) ||
			unicode.IsPunct(char) ||
			unicode.IsSymbol(char) ||
			unicode.IsSpace(char)) {
			return false
		}
	}
	return true
}

// FormatPromptError maps promptui sentinel errors to user facing messages.
func FormatPromptError(err error) error {
	switch err {
	case promptui.ErrAbort:
		return errors.New("aborted, closing")
	case promptui.ErrInterrupt:
		return errors.New("keyboard interrupt, closing")
	case promptui.ErrEOF:
		return errors.New("no input received, closing")
	default:
		return err
	}
}
