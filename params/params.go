package params

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

const PARAMS_PATH_ENV = "MOTORPLAN_PARAMS_PATH"

var ParamsPath string = defaultParamsPath()

// Params
const (
	MOTORPLAN_SETTINGS = "MotorplanSettings"
	LAST_MOTION_PLAN   = "MotorplanLastPlan"
)

var ErrLockTimeout = errors.New("could not obtain params lock")

func defaultParamsPath() string {
	if path := os.Getenv(PARAMS_PATH_ENV); path != "" {
		return path
	}
	return "/data/params/d"
}

// SetParamsPath points every later param operation at path.
func SetParamsPath(path string) {
	if path == "" {
		return
	}
	ParamsPath = path
}

// exists returns whether the given file or directory exists
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrap(err, "could not check param file stats")
}

func EnsureParamDirectories() error {
	return errors.Wrapf(os.MkdirAll(ParamsPath, 0o775), "could not make params directory %s", ParamsPath)
}

func ParamPath(name string) string {
	return filepath.Join(ParamsPath, name)
}

func lockPath() string {
	return filepath.Join(filepath.Dir(ParamsPath), ".lock")
}

func IsString(data []byte) bool {
	for _, b := range data {
		if (b < 32 || b > 126) && !(b == 9 || b == 13 || b == 10) {
			return false
		}
	}
	return true
}

func GetParams() ([]string, error) {
	files, err := os.ReadDir(ParamsPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read params directory")
	}

	paramFiles := []string{}
	for _, file := range files {
		name := file.Name()
		if file.Type().IsRegular() && name[0] != '.' {
			paramFiles = append(paramFiles, name)
		}
	}
	sort.Strings(paramFiles)

	return paramFiles, nil
}

func GetParam(name string) ([]byte, error) {
	data, err := os.ReadFile(ParamPath(name))
	return data, errors.Wrapf(err, "could not read param %s", name)
}

// lock takes the params directory lock. The returned func releases it.
func lock() (func(), error) {
	fileLock := flock.New(lockPath())

	retries := 0
	for {
		locked, err := fileLock.TryLock()
		if err != nil {
			return nil, errors.Wrap(err, "could not try locking params directory")
		}
		if locked {
			break
		}
		retries += 1
		if retries > 30 {
			// try to force the lock to be removed
			if err := os.Remove(lockPath()); err != nil {
				slog.Debug("failed to force delete params lock", "error", err)
			}
		}
		if retries > 50 {
			return nil, ErrLockTimeout
		}
		time.Sleep(1 * time.Millisecond)
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			slog.Error("could not unlock params directory", "error", err)
		}
		if err := os.Remove(lockPath()); err != nil && !os.IsNotExist(err) {
			slog.Error("could not remove params lock file", "error", err)
		}
	}, nil
}

func syncDir(dir string) error {
	directory, err := os.Open(dir)
	if err != nil {
		return errors.Wrap(err, "could not open params directory")
	}
	defer directory.Close()

	return errors.Wrap(directory.Sync(), "could not fsync params directory")
}

// PutParam writes data to a temp file and renames it over the param while
// holding the directory lock, so readers never see a partial value.
func PutParam(name string, data []byte) error {
	if err := EnsureParamDirectories(); err != nil {
		return err
	}
	path := ParamPath(name)
	file, err := os.CreateTemp(ParamsPath, ".tmp_value_"+name)
	if err != nil {
		return errors.Wrap(err, "could not create temp param file")
	}
	tmpName := file.Name()
	defer os.Remove(tmpName)
	defer file.Close()

	if _, err = file.Write(data); err != nil {
		return errors.Wrap(err, "could not write data to temp param file")
	}
	if err = file.Sync(); err != nil {
		return errors.Wrap(err, "could not fsync temp param file")
	}

	unlock, err := lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "could not move temp param file to persistent location")
	}

	return syncDir(ParamsPath)
}

func RemoveParam(name string) error {
	unlock, err := lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(ParamPath(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "could not remove param %s", name)
	}

	return syncDir(ParamsPath)
}
