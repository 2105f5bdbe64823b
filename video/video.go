// Package video assembles rendered PNG frames into a video file by
// delegating to an external ffmpeg binary; no encoding happens in-process.
package video

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
)

// FramePattern matches the renderer's frame naming.
const FramePattern = "img_%04d.png"

// Assemble encodes the numbered frames in frameDir into output. The frame
// sequence must be contiguous from img_0000.png; gaps are detected up front,
// since ffmpeg's sequence demuxer would otherwise stop at the first missing
// index without reporting an error.
func Assemble(frameDir, output string, fps int) error {
	frames, err := filepath.Glob(filepath.Join(frameDir, "img_*.png"))
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames matching img_*.png in %s", frameDir)
	}
	sort.Strings(frames)
	for i, frame := range frames {
		if want := filepath.Join(frameDir, fmt.Sprintf(FramePattern, i)); frame != want {
			return fmt.Errorf("frame sequence has a gap: want %s, have %s", want, frame)
		}
	}

	if _, err = exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	cmd := exec.Command("ffmpeg",
		"-y",
		"-framerate", fmt.Sprint(fps),
		"-i", filepath.Join(frameDir, FramePattern),
		"-pix_fmt", "yuv420p",
		output,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg failed: %v\n%s", err, out)
	}
	return nil
}
