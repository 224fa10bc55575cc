package media

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ExtractAudio pulls the audio track out of a video container into a 16 kHz
// mono WAV under stagingDir and returns the new path. The transcriber gets
// fed the extracted file instead of the original.
func ExtractAudio(ctx context.Context, ffmpegBin, inputPath, stagingDir string) (string, error) {
	ffmpegBin = strings.TrimSpace(ffmpegBin)
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if strings.TrimSpace(inputPath) == "" {
		return "", errors.New("extract audio: empty input path")
	}
	if strings.TrimSpace(stagingDir) == "" {
		return "", errors.New("extract audio: empty staging directory")
	}

	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	outputPath := filepath.Join(stagingDir, stem+".wav")

	args := []string{
		"-y", "-v", "error",
		"-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		outputPath,
	}
	cmd := commandContext(ctx, ffmpegBin, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return outputPath, nil
}
