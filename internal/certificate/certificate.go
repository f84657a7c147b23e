// Package certificate exports completion certificates.
package certificate

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/cyberguard/internal/result"
)

const cardWidth = 56

// Artifact describes an exported certificate.
type Artifact struct {
	Path string
}

// Exporter turns certificate data into a downloadable artifact.
type Exporter interface {
	Export(ctx context.Context, cert result.Certificate) (Artifact, error)
}

// FileExporter writes plain-text certificates into Dir.
type FileExporter struct {
	Dir string
}

// NewFileExporter returns an exporter writing into dir.
func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{Dir: dir}
}

// Export writes the certificate to <Dir>/<ID>.txt.
func (e *FileExporter) Export(ctx context.Context, cert result.Certificate) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	if e.Dir == "" {
		return Artifact{}, fmt.Errorf("certificate directory is empty")
	}
	path := filepath.Join(e.Dir, cert.ID+".txt")
	if err := writeAtomic(path, Render(cert)); err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: path}, nil
}

// Render returns the plain-text certificate card.
func Render(cert result.Certificate) []string {
	border := "+" + strings.Repeat("-", cardWidth-2) + "+"
	lines := []string{
		border,
		frame(""),
		frame("CYBER GUARDIAN"),
		frame("CERTIFICATE OF COMPLETION"),
		frame(""),
		frame("This certifies that"),
		frame(cert.Player),
		frame(""),
		frame("has successfully completed the"),
		frame("CYBER SECURITY AWARENESS TRAINING"),
		frame(fmt.Sprintf("%s Level - Score: %d/%d (%s)", cert.Difficulty, cert.Score, cert.Total, cert.PercentText())),
		frame(""),
		frame(cert.Tier.Label()),
		frame(""),
		frameSplit("Date: "+cert.Date(), "ID: "+cert.ID),
		border,
	}
	return lines
}

func frame(text string) string {
	inner := cardWidth - 4
	text = runewidth.Truncate(text, inner, "...")
	pad := inner - runewidth.StringWidth(text)
	left := pad / 2
	return "| " + strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left) + " |"
}

func frameSplit(left, right string) string {
	inner := cardWidth - 4
	gap := inner - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		return frame(left + " " + right)
	}
	return "| " + left + strings.Repeat(" ", gap) + right + " |"
}

func writeAtomic(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create certificate dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "certificate-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp certificate: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return fmt.Errorf("failed to write certificate: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush certificate: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close certificate: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write certificate: %w", err)
	}
	return nil
}
