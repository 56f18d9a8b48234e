// Package file holds the file system helpers of the command line tool.
package file

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// ReadWritePermissions for files holding key shares.
	ReadWritePermissions = os.FileMode(0600)
	// ReadWriteExecutePermissions for output directories.
	ReadWriteExecutePermissions = os.FileMode(0700)
)

// ExpandPath given a string which may be a relative path.
// 1. replace tilde with users home dir
// 2. expands embedded environment variables
// 3. cleans the path, e.g. /a/b/../c -> /a/c
// Note, it has limitations, e.g. ~someuser/tmp will not be expanded
func ExpandPath(p string) (string, error) {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := HomeDir(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Abs(filepath.Clean(os.ExpandEnv(p)))
}

// HomeDir for a user.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// HasDir checks if a directory indeed exists at the specified path.
func HasDir(dirPath string) (bool, error) {
	fullPath, err := ExpandPath(dirPath)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if info == nil {
		return false, err
	}
	return info.IsDir(), err
}

// FileExists returns true if a file is not a directory and exists
// at the specified path.
func FileExists(filename string) bool {
	filePath, err := ExpandPath(filename)
	if err != nil {
		return false
	}
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// MkdirAll takes in a path, expands it if necessary, and looks through the
// permissions of every directory along the path, ensuring we are not attempting
// to overwrite any existing permissions. Finally, creates the directory with 0700.
func MkdirAll(dirPath string) error {
	expanded, err := ExpandPath(dirPath)
	if err != nil {
		return err
	}
	exists, err := HasDir(expanded)
	if err != nil {
		return err
	}
	if exists {
		info, err := os.Stat(expanded)
		if err != nil {
			return err
		}
		if info.Mode().Perm() != ReadWriteExecutePermissions {
			return errors.New("dir already exists without proper 0700 permissions")
		}
		return nil
	}
	return os.MkdirAll(expanded, ReadWriteExecutePermissions)
}

// WriteFile writes data with 0600 permissions, refusing to touch an existing file with other permissions.
func WriteFile(file string, data []byte) error {
	expanded, err := ExpandPath(file)
	if err != nil {
		return err
	}
	if FileExists(expanded) {
		info, err := os.Stat(expanded)
		if err != nil {
			return err
		}
		if info.Mode() != ReadWritePermissions {
			return errors.New("file already exists without proper 0600 permissions")
		}
	}
	return os.WriteFile(expanded, data, ReadWritePermissions)
}

// ReadFileAsBytes expands a file name's absolute path and reads it as bytes from disk.
func ReadFileAsBytes(filename string) ([]byte, error) {
	filePath, err := ExpandPath(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not determine absolute path of file")
	}
	return os.ReadFile(filePath) // #nosec G304
}

// KeystoreFiles returns the keystore files at path: the path itself when it is a file,
// or every .json file of the directory in lexical order.
func KeystoreFiles(path string) ([]string, error) {
	fullPath, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	isDir, err := HasDir(fullPath)
	if err != nil {
		return nil, err
	}
	if !isDir {
		if !FileExists(fullPath) {
			return nil, errors.Errorf("keystore %s does not exist", fullPath)
		}
		return []string{fullPath}, nil
	}
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read directory %s", fullPath)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		files = append(files, filepath.Join(fullPath, e.Name()))
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no keystore files found in %s", fullPath)
	}
	sort.Strings(files)
	return files, nil
}

// OutputFilePath returns the key shares file path in dir: keyshares[-<unix seconds>][-<suffix>].json.
func OutputFilePath(dir string, timestamp time.Time, suffix string) string {
	name := "keyshares"
	if !timestamp.IsZero() {
		name = fmt.Sprintf("%s-%d", name, timestamp.Unix())
	}
	if suffix != "" {
		name = name + "-" + suffix
	}
	return filepath.Join(dir, name+".json")
}
