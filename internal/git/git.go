package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// ChangedHeaders returns the header files touched since baseRef, as slash
// paths relative to repoRoot. Untracked headers count as changed so a fresh
// file is picked up before its first commit. An error means git cannot be
// relied on and the caller should rescan everything.
func ChangedHeaders(repoRoot, baseRef string, extensions []string) ([]string, error) {
	diffed, err := gitLines(repoRoot, "diff", "--name-only", "--relative", baseRef)
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	untracked, err := gitLines(repoRoot, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("git ls-files failed: %w", err)
	}

	seen := make(map[string]bool)
	var headers []string
	for _, path := range append(diffed, untracked...) {
		if !isHeader(path, extensions) || seen[path] {
			continue
		}
		seen[path] = true
		headers = append(headers, path)
	}

	return headers, nil
}

func gitLines(dir string, args ...string) ([]string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func isHeader(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
