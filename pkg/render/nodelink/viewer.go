package nodelink

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Viewer displays a rendered image file.
type Viewer interface {
	View(ctx context.Context, path string) error
}

// SystemViewer opens files with the desktop's default application.
type SystemViewer struct{}

// View starts the platform opener for path and returns without waiting for
// the viewer to exit. The opener outlives ctx.
func (SystemViewer) View(_ context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
