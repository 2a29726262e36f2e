package relay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
)

const pickerTitle = "Select the meet program data directory"

var (
	ErrNoSelection     = errors.New("no directory selected")
	ErrWatchDirMissing = errors.New("watch directory does not exist")
)

// DirectoryPicker lets the operator choose the meet program's directory.
type DirectoryPicker interface {
	PickDirectory(ctx context.Context) (string, error)
}

// NativePicker opens the platform folder dialog through a helper program.
type NativePicker struct {
	GOOS string
	run  func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewNativePicker creates a picker for the running platform.
func NewNativePicker() *NativePicker {
	return &NativePicker{GOOS: runtime.GOOS, run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Command returns the program and arguments used on the picker's platform.
func (p *NativePicker) Command() (string, []string) {
	switch p.GOOS {
	case "windows":
		script := "Add-Type -AssemblyName System.Windows.Forms;" +
			"$d = New-Object System.Windows.Forms.FolderBrowserDialog;" +
			"$d.Description = '" + pickerTitle + "';" +
			"if ($d.ShowDialog() -eq 'OK') { $d.SelectedPath }"
		return "powershell", []string{"-NoProfile", "-STA", "-Command", script}
	case "darwin":
		return "osascript", []string{"-e", `POSIX path of (choose folder with prompt "` + pickerTitle + `")`}
	default:
		return "zenity", []string{"--file-selection", "--directory", "--title=" + pickerTitle}
	}
}

func (p *NativePicker) PickDirectory(ctx context.Context) (string, error) {
	name, args := p.Command()
	out, err := p.run(ctx, name, args...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	dir := strings.TrimSpace(string(out))
	if dir == "" {
		return "", ErrNoSelection
	}
	return dir, nil
}

// ResolveWatchDir returns configured when set, otherwise asks the picker and
// then the prompter. The chosen path must be an existing directory.
func ResolveWatchDir(ctx context.Context, configured string, picker DirectoryPicker, prompt *Prompter) (string, error) {
	dir := strings.TrimSpace(configured)

	if dir == "" && picker != nil {
		picked, err := picker.PickDirectory(ctx)
		if err != nil {
			logger.FromContext(ctx).Info(LogMsgPickerFailed, LogKeyError, err)
		}
		dir = picked
	}
	if dir == "" && prompt != nil {
		answer, err := prompt.Ask(ctx, "Enter the absolute path to the meet program data directory: ")
		if err != nil {
			return "", err
		}
		dir = answer
	}
	if dir == "" {
		return "", ErrNoSelection
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrWatchDirMissing, dir)
	}
	return dir, nil
}
