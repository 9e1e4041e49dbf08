package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// Load error codes.
const (
	ErrCodeNotFound    = "LOAD_NOT_FOUND"
	ErrCodeScanError   = "LOAD_SCAN_ERROR"
	ErrCodeNoFiles     = "LOAD_NO_FILES"
	ErrCodeLoadFailed  = "LOAD_FAILED"
	ErrCodeBuildFailed = "LOAD_BUILD_FAILED"
)

// LoadError reports a failure to load definition files from disk, before
// any compilation happens.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDir loads every CUE file in dir into a single unified value. The
// result is the raw definition value; pass it to CompileDefinitions or
// Validate.
func LoadDir(dir string) (cue.Value, error) {
	var zero cue.Value

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return zero, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions directory not found: %s", dir)}
	}
	if err != nil {
		return zero, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("accessing definitions directory: %v", err)}
	}
	if !info.IsDir() {
		return zero, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return zero, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return zero, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return zero, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return zero, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return zero, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}
	return value, nil
}

// FindCUEFiles returns the .cue files directly under dir, sorted for
// deterministic load order.
func FindCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".cue") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
